package errors

import "fmt"

// Common error constructors used throughout the codebase

// MissingNameError reports a callable with no derivable display name
func MissingNameError(callable string) *BaseError {
	message := fmt.Sprintf("callable %s has no derivable name", callable)
	return New(BindErrorCode, message).
		WithSuggestion("supply an explicit name when binding anonymous functions or method values")
}

// ClassificationError reports a value that is neither a function,
// a method, nor a type
func ClassificationError(name string) *BaseError {
	message := fmt.Sprintf("%q is neither a function, method nor type", name)
	return New(ClassificationErrorCode, message)
}

// DuplicateMethodError reports an instance-level bind refusing to
// shadow an existing method
func DuplicateMethodError(name string) *BaseError {
	message := fmt.Sprintf("asserter already has a method named %q", name)
	return New(BindErrorCode, message).
		WithSuggestion("pass override to replace the existing method")
}

// WrapInvocationError wraps a failure to invoke the asserted callable
func WrapInvocationError(name string, cause error) *BaseError {
	return Wrapf(InvocationErrorCode, cause, "failed to invoke %s", name)
}

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, cause error) *BaseError {
	return Wrapf(SyntaxErrorCode, cause, "failed to parse %s", item)
}

// WrapGenerateError wraps an error with a "failed to generate" message
func WrapGenerateError(item string, cause error) *BaseError {
	return Wrapf(GenerationErrorCode, cause, "failed to generate %s", item)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType string, cause error) *BaseError {
	message := fmt.Sprintf("failed to load configuration '%s'", configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType)
}
