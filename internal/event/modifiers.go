package event

import "github.com/dshills/jdwp/internal/runtime"

// ThreadOnlyModifier restricts events to a single thread.
type ThreadOnlyModifier struct {
	thread *runtime.GlobalRef
}

// NewThreadOnlyModifier retains thread and creates the modifier. Fails
// with runtime.ErrOutOfResources when the handle cannot be minted.
func NewThreadOnlyModifier(env runtime.Env, thread runtime.ObjectID) (*ThreadOnlyModifier, error) {
	ref, err := runtime.NewGlobalRef(env, thread)
	if err != nil {
		return nil, err
	}
	return &ThreadOnlyModifier{thread: ref}, nil
}

// Thread returns the owned thread handle.
func (m *ThreadOnlyModifier) Thread() runtime.ObjectID { return m.thread.ID() }

// Kind returns ModThreadOnly.
func (m *ThreadOnlyModifier) Kind() ModifierKind { return ModThreadOnly }

// Matches reports whether the occurrence happened on the owned thread.
// Info.Thread must be populated.
func (m *ThreadOnlyModifier) Matches(env runtime.Env, info *Info) bool {
	return env.Same(info.Thread, m.thread.ID())
}

// Close releases the owned thread handle.
func (m *ThreadOnlyModifier) Close() { m.thread.Release() }

// ClassOnlyModifier restricts events to a class and its subtypes.
type ClassOnlyModifier struct {
	class *runtime.GlobalRef
}

// NewClassOnlyModifier retains cls and creates the modifier.
func NewClassOnlyModifier(env runtime.Env, cls runtime.ObjectID) (*ClassOnlyModifier, error) {
	ref, err := runtime.NewGlobalRef(env, cls)
	if err != nil {
		return nil, err
	}
	return &ClassOnlyModifier{class: ref}, nil
}

// Class returns the owned class handle.
func (m *ClassOnlyModifier) Class() runtime.ObjectID { return m.class.ID() }

// Kind returns ModClassOnly.
func (m *ClassOnlyModifier) Kind() ModifierKind { return ModClassOnly }

// Matches reports whether the occurrence class is the owned class or a
// subtype of it. This is assignability, not identity.
func (m *ClassOnlyModifier) Matches(env runtime.Env, info *Info) bool {
	return env.AssignableTo(info.Class, m.class.ID())
}

// Close releases the owned class handle.
func (m *ClassOnlyModifier) Close() { m.class.Release() }

// ClassMatchModifier restricts events to classes whose name matches a
// JDWP class pattern.
type ClassMatchModifier struct {
	pattern string
}

// NewClassMatchModifier creates a ClassMatch modifier for the pattern.
func NewClassMatchModifier(pattern string) *ClassMatchModifier {
	return &ClassMatchModifier{pattern: pattern}
}

// Pattern returns the class pattern.
func (m *ClassMatchModifier) Pattern() string { return m.pattern }

// Kind returns ModClassMatch.
func (m *ClassMatchModifier) Kind() ModifierKind { return ModClassMatch }

// Matches reports whether the occurrence class name matches the pattern.
// Info.Signature must be populated.
func (m *ClassMatchModifier) Matches(_ runtime.Env, info *Info) bool {
	return MatchPattern(info.Signature, m.pattern)
}

// Close implements Modifier. ClassMatchModifier owns no handles.
func (m *ClassMatchModifier) Close() {}

// ClassExcludeModifier drops events for classes whose name matches a JDWP
// class pattern.
type ClassExcludeModifier struct {
	pattern string
}

// NewClassExcludeModifier creates a ClassExclude modifier for the pattern.
func NewClassExcludeModifier(pattern string) *ClassExcludeModifier {
	return &ClassExcludeModifier{pattern: pattern}
}

// Pattern returns the class pattern.
func (m *ClassExcludeModifier) Pattern() string { return m.pattern }

// Kind returns ModClassExclude.
func (m *ClassExcludeModifier) Kind() ModifierKind { return ModClassExclude }

// Matches reports whether the occurrence class name does not match the
// pattern.
func (m *ClassExcludeModifier) Matches(_ runtime.Env, info *Info) bool {
	return !MatchPattern(info.Signature, m.pattern)
}

// Close implements Modifier. ClassExcludeModifier owns no handles.
func (m *ClassExcludeModifier) Close() {}

// LocationOnlyModifier restricts events to one code location.
type LocationOnlyModifier struct {
	class    *runtime.GlobalRef
	method   runtime.MethodID
	location runtime.Location
}

// NewLocationOnlyModifier retains cls and creates the modifier for the
// given method and location.
func NewLocationOnlyModifier(env runtime.Env, cls runtime.ObjectID, method runtime.MethodID, location runtime.Location) (*LocationOnlyModifier, error) {
	ref, err := runtime.NewGlobalRef(env, cls)
	if err != nil {
		return nil, err
	}
	return &LocationOnlyModifier{class: ref, method: method, location: location}, nil
}

// Class returns the owned class handle.
func (m *LocationOnlyModifier) Class() runtime.ObjectID { return m.class.ID() }

// Method returns the method of the location.
func (m *LocationOnlyModifier) Method() runtime.MethodID { return m.method }

// Location returns the position within the method.
func (m *LocationOnlyModifier) Location() runtime.Location { return m.location }

// Kind returns ModLocationOnly.
func (m *LocationOnlyModifier) Kind() ModifierKind { return ModLocationOnly }

// Matches reports whether the occurrence happened at exactly the owned
// location. The class comparison is identity, not assignability.
func (m *LocationOnlyModifier) Matches(env runtime.Env, info *Info) bool {
	return info.Method == m.method &&
		info.Location == m.location &&
		env.Same(info.Class, m.class.ID())
}

// Close releases the owned class handle.
func (m *LocationOnlyModifier) Close() { m.class.Release() }

// ExceptionOnlyModifier restricts exception events by thrown type and by
// whether the exception was caught.
type ExceptionOnlyModifier struct {
	class    *runtime.GlobalRef
	caught   bool
	uncaught bool
}

// NewExceptionOnlyModifier retains cls (the null handle means any
// exception type) and creates the modifier. The caught and uncaught flags
// select which catch states are reported.
func NewExceptionOnlyModifier(env runtime.Env, cls runtime.ObjectID, caught, uncaught bool) (*ExceptionOnlyModifier, error) {
	ref, err := runtime.NewGlobalRef(env, cls)
	if err != nil {
		return nil, err
	}
	return &ExceptionOnlyModifier{class: ref, caught: caught, uncaught: uncaught}, nil
}

// Class returns the owned exception class handle, null for any type.
func (m *ExceptionOnlyModifier) Class() runtime.ObjectID { return m.class.ID() }

// Caught reports whether caught exceptions are reported.
func (m *ExceptionOnlyModifier) Caught() bool { return m.caught }

// Uncaught reports whether uncaught exceptions are reported.
func (m *ExceptionOnlyModifier) Uncaught() bool { return m.uncaught }

// Kind returns ModExceptionOnly.
func (m *ExceptionOnlyModifier) Kind() ModifierKind { return ModExceptionOnly }

// Matches reports whether the occurrence's catch state is selected and
// its thrown type (Info.AuxClass) is assignable to the owned class, if
// one is set.
func (m *ExceptionOnlyModifier) Matches(env runtime.Env, info *Info) bool {
	selected := m.uncaught
	if info.Caught {
		selected = m.caught
	}
	if !selected {
		return false
	}
	if m.class.IsNull() {
		return true
	}
	return !info.AuxClass.IsNull() && env.AssignableTo(info.AuxClass, m.class.ID())
}

// Close releases the owned class handle.
func (m *ExceptionOnlyModifier) Close() { m.class.Release() }

// FieldOnlyModifier restricts field access and modification events to one
// field of one class.
type FieldOnlyModifier struct {
	class *runtime.GlobalRef
	field runtime.FieldID
}

// NewFieldOnlyModifier retains cls and creates the modifier for field.
func NewFieldOnlyModifier(env runtime.Env, cls runtime.ObjectID, field runtime.FieldID) (*FieldOnlyModifier, error) {
	ref, err := runtime.NewGlobalRef(env, cls)
	if err != nil {
		return nil, err
	}
	return &FieldOnlyModifier{class: ref, field: field}, nil
}

// Class returns the owned class handle.
func (m *FieldOnlyModifier) Class() runtime.ObjectID { return m.class.ID() }

// Field returns the watched field.
func (m *FieldOnlyModifier) Field() runtime.FieldID { return m.field }

// Kind returns ModFieldOnly.
func (m *FieldOnlyModifier) Kind() ModifierKind { return ModFieldOnly }

// Matches reports whether the occurrence touched exactly the owned field.
// The class comparison is identity, not assignability.
func (m *FieldOnlyModifier) Matches(env runtime.Env, info *Info) bool {
	return info.Field == m.field && env.Same(info.Class, m.class.ID())
}

// Close releases the owned class handle.
func (m *FieldOnlyModifier) Close() { m.class.Release() }

// StepSize is the granularity of a single step.
type StepSize int32

const (
	// StepSizeMin steps by the smallest possible amount, often one
	// bytecode instruction.
	StepSizeMin StepSize = 0
	// StepSizeLine steps to the next source line.
	StepSizeLine StepSize = 1
)

// StepDepth is the call-stack relation of a single step.
type StepDepth int32

const (
	// StepDepthInto steps into any called method.
	StepDepthInto StepDepth = 0
	// StepDepthOver steps over called methods.
	StepDepthOver StepDepth = 1
	// StepDepthOut steps out of the current frame.
	StepDepthOut StepDepth = 2
)

// StepModifier carries the thread, size and depth of a single-step
// request. The step engine consults these parameters when driving the VM;
// the filtering pass itself accepts every step occurrence.
type StepModifier struct {
	thread *runtime.GlobalRef
	size   StepSize
	depth  StepDepth
}

// NewStepModifier retains thread and creates the modifier.
func NewStepModifier(env runtime.Env, thread runtime.ObjectID, size StepSize, depth StepDepth) (*StepModifier, error) {
	ref, err := runtime.NewGlobalRef(env, thread)
	if err != nil {
		return nil, err
	}
	return &StepModifier{thread: ref, size: size, depth: depth}, nil
}

// Thread returns the owned stepping thread handle.
func (m *StepModifier) Thread() runtime.ObjectID { return m.thread.ID() }

// Size returns the step size.
func (m *StepModifier) Size() StepSize { return m.size }

// Depth returns the step depth.
func (m *StepModifier) Depth() StepDepth { return m.depth }

// Kind returns ModStep.
func (m *StepModifier) Kind() ModifierKind { return ModStep }

// Matches always reports true; size and depth filtering happens in the
// step engine, not here.
func (m *StepModifier) Matches(runtime.Env, *Info) bool { return true }

// Close releases the owned thread handle.
func (m *StepModifier) Close() { m.thread.Release() }

// InstanceOnlyModifier restricts events to one receiver object, or to
// occurrences with no receiver when constructed from the null handle.
type InstanceOnlyModifier struct {
	instance *runtime.GlobalRef
}

// NewInstanceOnlyModifier retains obj (the null handle means "no
// receiver") and creates the modifier.
func NewInstanceOnlyModifier(env runtime.Env, obj runtime.ObjectID) (*InstanceOnlyModifier, error) {
	ref, err := runtime.NewGlobalRef(env, obj)
	if err != nil {
		return nil, err
	}
	return &InstanceOnlyModifier{instance: ref}, nil
}

// Instance returns the owned receiver handle, null for "no receiver".
func (m *InstanceOnlyModifier) Instance() runtime.ObjectID { return m.instance.ID() }

// Kind returns ModInstanceOnly.
func (m *InstanceOnlyModifier) Kind() ModifierKind { return ModInstanceOnly }

// Matches reports whether the occurrence's receiver is identity-equal to
// the owned object, or whether both are absent.
//
// When the callback layer did not supply a receiver and the occurrence is
// inside a method, the receiver is resolved here from local slot 0 of the
// current frame (the VM keeps "this" there for instance methods) and
// written into Info.Instance so later modifiers of the same pass reuse
// it. Resolution failures leave the receiver absent; they never escalate.
func (m *InstanceOnlyModifier) Matches(env runtime.Env, info *Info) bool {
	if info.Instance.IsNull() && kindHasReceiver(info.Kind) {
		static, err := env.StaticMethod(info.Method)
		if err == nil && !static {
			if obj, err := env.Receiver(info.Thread, 0, 0); err == nil {
				info.Instance = obj
			}
		}
	}

	if info.Instance.IsNull() || m.instance.IsNull() {
		return info.Instance.IsNull() && m.instance.IsNull()
	}
	return env.Same(info.Instance, m.instance.ID())
}

// Close releases the owned receiver handle.
func (m *InstanceOnlyModifier) Close() { m.instance.Release() }

// kindHasReceiver reports whether the event kind occurs inside a method
// whose receiver can be read from the current frame.
func kindHasReceiver(k Kind) bool {
	switch k {
	case KindSingleStep, KindBreakpoint, KindException, KindMethodEntry, KindMethodExit:
		return true
	default:
		return false
	}
}
