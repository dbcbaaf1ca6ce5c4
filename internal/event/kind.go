package event

// Kind is the JDWP event kind of an occurrence. Values are the protocol's
// EventKind constants.
type Kind uint8

const (
	// KindSingleStep is a completed single step in a thread.
	KindSingleStep Kind = 1
	// KindBreakpoint is a hit breakpoint.
	KindBreakpoint Kind = 2
	// KindFramePop is a popped stack frame.
	KindFramePop Kind = 3
	// KindException is a thrown exception.
	KindException Kind = 4
	// KindUserDefined is reserved by the protocol.
	KindUserDefined Kind = 5
	// KindThreadStart is a started thread.
	KindThreadStart Kind = 6
	// KindThreadEnd is a terminated thread.
	KindThreadEnd Kind = 7
	// KindClassPrepare is a class made ready for use.
	KindClassPrepare Kind = 8
	// KindClassUnload is an unloaded class.
	KindClassUnload Kind = 9
	// KindClassLoad is a loaded class.
	KindClassLoad Kind = 10
	// KindFieldAccess is a watched field read.
	KindFieldAccess Kind = 20
	// KindFieldModification is a watched field write.
	KindFieldModification Kind = 21
	// KindExceptionCatch is a caught exception.
	KindExceptionCatch Kind = 30
	// KindMethodEntry is an entered method.
	KindMethodEntry Kind = 40
	// KindMethodExit is an exited method.
	KindMethodExit Kind = 41
	// KindVMInit is the VM finishing initialization.
	KindVMInit Kind = 90
	// KindVMDeath is the VM shutting down.
	KindVMDeath Kind = 99
)

// String returns the protocol name of the event kind.
func (k Kind) String() string {
	switch k {
	case KindSingleStep:
		return "SINGLE_STEP"
	case KindBreakpoint:
		return "BREAKPOINT"
	case KindFramePop:
		return "FRAME_POP"
	case KindException:
		return "EXCEPTION"
	case KindUserDefined:
		return "USER_DEFINED"
	case KindThreadStart:
		return "THREAD_START"
	case KindThreadEnd:
		return "THREAD_END"
	case KindClassPrepare:
		return "CLASS_PREPARE"
	case KindClassUnload:
		return "CLASS_UNLOAD"
	case KindClassLoad:
		return "CLASS_LOAD"
	case KindFieldAccess:
		return "FIELD_ACCESS"
	case KindFieldModification:
		return "FIELD_MODIFICATION"
	case KindExceptionCatch:
		return "EXCEPTION_CATCH"
	case KindMethodEntry:
		return "METHOD_ENTRY"
	case KindMethodExit:
		return "METHOD_EXIT"
	case KindVMInit:
		return "VM_INIT"
	case KindVMDeath:
		return "VM_DEATH"
	default:
		return "UNKNOWN"
	}
}

// ModifierKind is the JDWP modifier kind of a request filter. Values are
// the protocol's EventRequest modKind constants.
type ModifierKind uint8

const (
	// ModCount reports the event once after a countdown.
	ModCount ModifierKind = 1
	// ModConditional is reserved by the protocol; never filters.
	ModConditional ModifierKind = 2
	// ModThreadOnly restricts events to one thread.
	ModThreadOnly ModifierKind = 3
	// ModClassOnly restricts events to one class and its subtypes.
	ModClassOnly ModifierKind = 4
	// ModClassMatch restricts events to class names matching a pattern.
	ModClassMatch ModifierKind = 5
	// ModClassExclude drops events for class names matching a pattern.
	ModClassExclude ModifierKind = 6
	// ModLocationOnly restricts events to one code location.
	ModLocationOnly ModifierKind = 7
	// ModExceptionOnly restricts exception events by type and catch state.
	ModExceptionOnly ModifierKind = 8
	// ModFieldOnly restricts field events to one field.
	ModFieldOnly ModifierKind = 9
	// ModStep carries single-step parameters; never filters here.
	ModStep ModifierKind = 10
	// ModInstanceOnly restricts events to one receiver object.
	ModInstanceOnly ModifierKind = 11
)

// String returns the protocol name of the modifier kind.
func (k ModifierKind) String() string {
	switch k {
	case ModCount:
		return "Count"
	case ModConditional:
		return "Conditional"
	case ModThreadOnly:
		return "ThreadOnly"
	case ModClassOnly:
		return "ClassOnly"
	case ModClassMatch:
		return "ClassMatch"
	case ModClassExclude:
		return "ClassExclude"
	case ModLocationOnly:
		return "LocationOnly"
	case ModExceptionOnly:
		return "ExceptionOnly"
	case ModFieldOnly:
		return "FieldOnly"
	case ModStep:
		return "Step"
	case ModInstanceOnly:
		return "InstanceOnly"
	default:
		return "Unknown"
	}
}
