package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEngine    Phase = "engine"    // engine construction
	PhaseValidate  Phase = "validate"  // geometry and coordinate validation
	PhaseTransform Phase = "transform" // coordinate transformation
	PhasePipeline  Phase = "pipeline"  // feature and collection processing
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedCoordinateSystem Kind = "unsupported_coordinate_system"
	KindTransformation              Kind = "transformation"
	KindInvalidGeometryType         Kind = "invalid_geometry_type"
	KindEmptyGeometry               Kind = "empty_geometry"
	KindInvalidCoordinate           Kind = "invalid_coordinate"
)

// Sentinels for errors.Is. They match any *Error of the same kind, whatever its phase.
var (
	ErrUnsupportedCoordinateSystem = &Error{Kind: KindUnsupportedCoordinateSystem, Offset: NoOffset}
	ErrTransformation              = &Error{Kind: KindTransformation, Offset: NoOffset}
	ErrInvalidGeometryType         = &Error{Kind: KindInvalidGeometryType, Offset: NoOffset}
	ErrEmptyGeometry               = &Error{Kind: KindEmptyGeometry, Offset: NoOffset}
	ErrInvalidCoordinate           = &Error{Kind: KindInvalidCoordinate, Offset: NoOffset}
)

// NoOffset marks an error not tied to a single coordinate
const NoOffset = -1

// Error is the structured error type used throughout the pipeline
type Error struct {
	Cause        error
	Phase        Phase
	Kind         Kind
	Source       string
	Target       string
	GeometryType string
	Detail       string
	Path         []string
	Offset       int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	var context []string
	if e.GeometryType != "" {
		context = append(context, e.GeometryType)
	}
	if e.Source != "" || e.Target != "" {
		context = append(context, e.Source+" -> "+e.Target)
	}
	if e.Offset >= 0 {
		context = append(context, "offset "+strconv.Itoa(e.Offset))
	}
	if len(context) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(context, ", "))
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without phase matches on kind only.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: NoOffset,
		},
	}
}

// Systems sets the source and target coordinate system identifiers
func (b *Builder) Systems(source, target string) *Builder {
	b.err.Source = source
	b.err.Target = target
	return b
}

// GeometryType sets the geometry variant being converted
func (b *Builder) GeometryType(t string) *Builder {
	b.err.GeometryType = t
	return b
}

// Path sets the path inside the geometry tree
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the index of the offending coordinate
func (b *Builder) Offset(offset int) *Builder {
	b.err.Offset = offset
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedCoordinateSystem creates an engine construction error for a system pair
func UnsupportedCoordinateSystem(source, target string, cause error) *Error {
	return New(PhaseEngine, KindUnsupportedCoordinateSystem).
		Systems(source, target).
		Detail("cannot build transformation").
		Cause(cause).
		Build()
}

// Transformation creates a coordinate transformation error
func Transformation(source, target string, offset int, cause error) *Error {
	return New(PhaseTransform, KindTransformation).
		Systems(source, target).
		Offset(offset).
		Cause(cause).
		Build()
}

// InvalidGeometryType creates an error for an unrecognized geometry variant
func InvalidGeometryType(geometryType string) *Error {
	detail := "unrecognized geometry type"
	if geometryType == "" {
		detail = "missing geometry"
	}
	return New(PhaseValidate, KindInvalidGeometryType).
		GeometryType(geometryType).
		Detail(detail).
		Build()
}

// EmptyGeometry creates an error for a line or ring with too few coordinates
func EmptyGeometry(geometryType string, count, minimum int) *Error {
	return New(PhaseValidate, KindEmptyGeometry).
		GeometryType(geometryType).
		Detail("%d coordinates, at least %d required", count, minimum).
		Build()
}

// InvalidCoordinate creates an error for a non-finite or truncated position
func InvalidCoordinate(geometryType string, offset int, position []float64) *Error {
	return New(PhaseValidate, KindInvalidCoordinate).
		GeometryType(geometryType).
		Offset(offset).
		Detail("invalid position %v", position).
		Build()
}

// WithPath returns a copy of a structured error with path segments prepended, leaving other
// errors untouched. Used while an error bubbles up the geometry tree so paths are only built on
// failure.
func WithPath(err error, segments ...string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	c := *e
	c.Path = make([]string, 0, len(segments)+len(e.Path))
	c.Path = append(c.Path, segments...)
	c.Path = append(c.Path, e.Path...)
	return &c
}

// Segment formats an indexed path segment, e.g. Segment("rings", 2) is "rings[2]"
func Segment(name string, index int) string {
	return name + "[" + strconv.Itoa(index) + "]"
}

// WithGeometryType returns a copy of a structured error carrying the geometry variant, if it
// does not carry one yet
func WithGeometryType(err error, geometryType string) error {
	e, ok := err.(*Error)
	if !ok || e.GeometryType != "" {
		return err
	}
	c := *e
	c.GeometryType = geometryType
	return &c
}

// Clone returns an independent copy of a structured error, or err itself for any other error
func Clone(err error) error {
	e, ok := err.(*Error)
	if !ok || e == nil {
		return err
	}
	c := *e
	c.Path = append([]string(nil), e.Path...)
	return &c
}

// KindOf returns the kind of a structured error, or "" for any other error
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
