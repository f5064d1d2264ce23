// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedIdentifier is returned when a string does not follow the kind:plugin.name layout.
	ErrMalformedIdentifier = errors.New("malformed identifier")

	// ErrIdentifierConflict is returned when two namespaces assign different identifiers to the same key.
	ErrIdentifierConflict = errors.New("identifier conflict")

	// ErrUnknownPlugin is returned when no location has been registered for a plugin.
	// It signals a malformed deployment and is never retried.
	ErrUnknownPlugin = errors.New("no location provided for plugin")

	// ErrPluginAlreadyRegistered is returned when a second location is added for the same plugin id.
	ErrPluginAlreadyRegistered = errors.New("plugin location already registered")

	// ErrInvalidLocation is returned when a location has an empty plugin id or no module loader.
	ErrInvalidLocation = errors.New("invalid plugin location")

	// ErrMissingMetadataValue is returned when a declared metadata key has no value.
	// It signals a malformed deployment and is never retried.
	ErrMissingMetadataValue = errors.New("no metadata value provided")

	// ErrResourceNotProduced is returned when the owning plugin started but did not set the resource.
	ErrResourceNotProduced = errors.New("resource not loaded")

	// ErrNotAResourceProvider is returned when the plugin registered as resolver does not implement ResourceProvider.
	ErrNotAResourceProvider = errors.New("plugin is not a resource provider")

	// ErrCyclicDependency is returned when a plugin transitively depends on itself.
	ErrCyclicDependency = errors.New("cyclic plugin dependency")

	// ErrUnknownInstance is returned when no container exists for a document id.
	ErrUnknownInstance = errors.New("instance not found")

	// ErrUnknownClass is returned when a class id has not been declared.
	ErrUnknownClass = errors.New("class is not declared")

	// ErrClassAlreadyDeclared is returned when a class is redeclared with a different content.
	ErrClassAlreadyDeclared = errors.New("class already declared")

	// ErrCyclicInheritance is returned when an extends chain loops back on itself.
	ErrCyclicInheritance = errors.New("cyclic class inheritance")

	// ErrInvalidClass is returned when a class document is structurally invalid.
	ErrInvalidClass = errors.New("invalid class")

	// ErrUnknownAttribute is returned when an instance is given an attribute its class does not declare.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrClassMismatch is returned when a document is viewed through a class it does not carry.
	ErrClassMismatch = errors.New("instance does not carry class")

	// ErrNotAType is returned when an attribute type refers to a class without a type native.
	ErrNotAType = errors.New("class is not a type")

	// ErrCoercion is returned when a raw or live value does not have the shape its type expects.
	ErrCoercion = errors.New("value coercion failed")

	// ErrInvalidRecord is returned when a model record is structurally invalid.
	ErrInvalidRecord = errors.New("invalid model record")
)

// NewErrMalformedIdentifier formats an ErrMalformedIdentifier with the offending text.
func NewErrMalformedIdentifier(text string) error {
	return fmt.Errorf("identifier=(%s) %w", text, ErrMalformedIdentifier)
}

// NewErrIdentifierConflict formats an ErrIdentifierConflict for the given namespace key.
func NewErrIdentifierConflict(namespace, key, left, right string) error {
	return fmt.Errorf("%s.%s=(%s|%s) %w", namespace, key, left, right, ErrIdentifierConflict)
}

// NewErrUnknownPlugin formats an ErrUnknownPlugin with the plugin id.
func NewErrUnknownPlugin(plugin string) error {
	return fmt.Errorf("plugin=(%s) %w", plugin, ErrUnknownPlugin)
}

// NewErrPluginAlreadyRegistered formats an ErrPluginAlreadyRegistered with the plugin id.
func NewErrPluginAlreadyRegistered(plugin string) error {
	return fmt.Errorf("plugin=(%s) %w", plugin, ErrPluginAlreadyRegistered)
}

// NewErrMissingMetadataValue formats an ErrMissingMetadataValue with the key and id.
func NewErrMissingMetadataValue(key, id string) error {
	return fmt.Errorf("key=(%s) id=(%s) %w", key, id, ErrMissingMetadataValue)
}

// NewErrResourceNotProduced formats an ErrResourceNotProduced with the resource id.
func NewErrResourceNotProduced(resource string) error {
	return fmt.Errorf("resource=(%s) %w", resource, ErrResourceNotProduced)
}

// NewErrNotAResourceProvider formats an ErrNotAResourceProvider with the plugin id.
func NewErrNotAResourceProvider(plugin string) error {
	return fmt.Errorf("plugin=(%s) %w", plugin, ErrNotAResourceProvider)
}

// NewErrCyclicDependency formats an ErrCyclicDependency with the offending chain.
func NewErrCyclicDependency(chain []string) error {
	return fmt.Errorf("chain=(%v) %w", chain, ErrCyclicDependency)
}

// NewErrUnknownInstance formats an ErrUnknownInstance with the document id.
func NewErrUnknownInstance(id string) error {
	return fmt.Errorf("instance=(%s) %w", id, ErrUnknownInstance)
}

// NewErrUnknownClass formats an ErrUnknownClass with the class id.
func NewErrUnknownClass(id string) error {
	return fmt.Errorf("class=(%s) %w", id, ErrUnknownClass)
}

// NewErrClassAlreadyDeclared formats an ErrClassAlreadyDeclared with the class id.
func NewErrClassAlreadyDeclared(id string) error {
	return fmt.Errorf("class=(%s) %w", id, ErrClassAlreadyDeclared)
}

// NewErrCyclicInheritance formats an ErrCyclicInheritance with the class id.
func NewErrCyclicInheritance(id string) error {
	return fmt.Errorf("class=(%s) %w", id, ErrCyclicInheritance)
}

// NewErrInvalidClass wraps a reason with ErrInvalidClass.
func NewErrInvalidClass(id string, reason error) error {
	return fmt.Errorf("class=(%s) %w", id, errors.Join(ErrInvalidClass, reason))
}

// NewErrUnknownAttribute formats an ErrUnknownAttribute with the class and attribute name.
func NewErrUnknownAttribute(class, attribute string) error {
	return fmt.Errorf("class=(%s) attribute=(%s) %w", class, attribute, ErrUnknownAttribute)
}

// NewErrClassMismatch formats an ErrClassMismatch with the document and class ids.
func NewErrClassMismatch(id, class string) error {
	return fmt.Errorf("instance=(%s) class=(%s) %w", id, class, ErrClassMismatch)
}

// NewErrNotAType formats an ErrNotAType with the class id.
func NewErrNotAType(class string) error {
	return fmt.Errorf("class=(%s) %w", class, ErrNotAType)
}

// NewErrCoercion formats an ErrCoercion with the expected shape and the received value.
func NewErrCoercion(expected string, value any) error {
	return fmt.Errorf("expected=(%s) got=(%T) %w", expected, value, ErrCoercion)
}

// NewErrInvalidRecord wraps a reason with ErrInvalidRecord for the record at index.
func NewErrInvalidRecord(index int, reason error) error {
	return fmt.Errorf("record=(%d) %w", index, errors.Join(ErrInvalidRecord, reason))
}

// IsConfigurationError reports whether err signals a malformed deployment.
// Such errors should abort startup rather than be surfaced to an end user.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownPlugin) ||
		errors.Is(err, ErrMissingMetadataValue) ||
		errors.Is(err, ErrPluginAlreadyRegistered) ||
		errors.Is(err, ErrInvalidLocation) ||
		errors.Is(err, ErrCyclicDependency)
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

// InternalError defines an error that is explicit to the application
type InternalError struct {
	err error
}

// enforce compilation error
var _ error = (*InternalError)(nil)

// NewInternalError returns an instance of InternalError
func NewInternalError(err error) *InternalError {
	return &InternalError{
		err: fmt.Errorf("internal error: %w", err),
	}
}

// Error implements the standard error interface
func (i *InternalError) Error() string {
	return i.err.Error()
}

func (i *InternalError) Unwrap() error {
	return i.err
}

// PluginError defines an error raised while instantiating a plugin
type PluginError struct {
	plugin string
	err    error
}

var _ error = (*PluginError)(nil)

// NewPluginError returns an instance of PluginError
func NewPluginError(plugin string, err error) *PluginError {
	return &PluginError{plugin: plugin, err: err}
}

// Plugin returns the id of the plugin that failed
func (e *PluginError) Plugin() string {
	return e.plugin
}

func (e *PluginError) Error() string {
	return fmt.Errorf("plugin %s: %w", e.plugin, e.err).Error()
}

func (e *PluginError) Unwrap() error {
	return e.err
}
