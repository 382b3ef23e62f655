package token

import "sort"

// KeywordTableVersion identifies the reserved word list. Any change to the
// table or to the operator set is a breaking change for downstream parsers
// and must bump this value.
const KeywordTableVersion = "1"

var keywords = map[string]Kind{
	"Boolean":  KwBoolean,
	"Integer":  KwInteger,
	"Real":     KwReal,
	"String":   KwString,
	"Date":     KwDate,
	"Duration": KwDuration,

	"In":             KwIn,
	"InOut":          KwInOut,
	"Command":        KwCommand,
	"Lookup":         KwLookup,
	"LookupNow":      KwLookupNow,
	"LookupOnChange": KwLookupOnChange,
	"LibraryAction":  KwLibraryAction,
	"LibraryCall":    KwLibraryCall,
	"Update":         KwUpdate,
	"Request":        KwRequest,
	"Returns":        KwReturns,

	"Priority":             KwPriority,
	"Permissions":          KwPermissions,
	"Resource":             KwResource,
	"ResourcePriority":     KwResourcePriority,
	"Name":                 KwName,
	"UpperBound":           KwUpperBound,
	"LowerBound":           KwLowerBound,
	"ReleaseAtTermination": KwReleaseAtTermination,
	"Tolerance":            KwTolerance,
	"Comment":              KwComment,

	"StartCondition":     KwStartCondition,
	"Start":              KwStartCondition,
	"EndCondition":       KwEndCondition,
	"End":                KwEndCondition,
	"ExitCondition":      KwExitCondition,
	"Exit":               KwExitCondition,
	"InvariantCondition": KwInvariantCondition,
	"Invariant":          KwInvariantCondition,
	"PostCondition":      KwPostCondition,
	"Post":               KwPostCondition,
	"PreCondition":       KwPreCondition,
	"Pre":                KwPreCondition,
	"RepeatCondition":    KwRepeatCondition,
	"Repeat":             KwRepeatCondition,
	"SkipCondition":      KwSkipCondition,
	"Skip":               KwSkipCondition,

	"Concurrence":        KwConcurrence,
	"Sequence":           KwSequence,
	"CheckedSequence":    KwCheckedSequence,
	"UncheckedSequence":  KwUncheckedSequence,
	"Try":                KwTry,
	"if":                 KwIf,
	"elseif":             KwElseIf,
	"else":               KwElse,
	"endif":              KwEndIf,
	"while":              KwWhile,
	"for":                KwFor,
	"OnCommand":          KwOnCommand,
	"OnMessage":          KwOnMessage,
	"SendMessage":        KwSendMessage,
	"Wait":               KwWait,
	"SynchronousCommand": KwSynchronousCommand,
	"Timeout":            KwTimeout,

	"WAITING":         KwWaitingState,
	"EXECUTING":       KwExecutingState,
	"FINISHING":       KwFinishingState,
	"FAILING":         KwFailingState,
	"ITERATION_ENDED": KwIterationEndedState,
	"FINISHED":        KwFinishedState,
	"INACTIVE":        KwInactiveState,

	"SUCCESS":     KwSuccessOutcome,
	"FAILURE":     KwFailureOutcome,
	"SKIPPED":     KwSkippedOutcome,
	"INTERRUPTED": KwInterruptedOutcome,

	"PRE_CONDITION_FAILED":       KwPreConditionFailed,
	"POST_CONDITION_FAILED":      KwPostConditionFailed,
	"INVARIANT_CONDITION_FAILED": KwInvariantConditionFailed,
	"PARENT_FAILED":              KwParentFailed,
	"EXITED":                     KwExited,
	"PARENT_EXITED":              KwParentExited,

	"COMMAND_ACCEPTED":        KwCommandAccepted,
	"COMMAND_DENIED":          KwCommandDenied,
	"COMMAND_FAILED":          KwCommandFailed,
	"COMMAND_RCVD_BY_SYSTEM":  KwCommandRcvdBySystem,
	"COMMAND_SENT_TO_SYSTEM":  KwCommandSentToSystem,
	"COMMAND_SUCCESS":         KwCommandSuccess,
	"COMMAND_ABORTED":         KwCommandAborted,
	"COMMAND_ABORT_FAILED":    KwCommandAbortFailed,
	"COMMAND_INTERFACE_ERROR": KwCommandInterfaceError,

	"Self":    KwSelf,
	"Parent":  KwParent,
	"Child":   KwChild,
	"Sibling": KwSibling,

	"state":          KwState,
	"outcome":        KwOutcome,
	"failure":        KwFailure,
	"command_handle": KwCommandHandle,
	"START":          KwStartTimepoint,
	"END":            KwEndTimepoint,

	"true":    KwTrue,
	"false":   KwFalse,
	"UNKNOWN": KwUnknown,

	"AND": And,
	"OR":  Or,
	"NOT": Not,
	"XOR": KwXor,

	"abs":          KwAbs,
	"sqrt":         KwSqrt,
	"ceil":         KwCeil,
	"floor":        KwFloor,
	"round":        KwRound,
	"trunc":        KwTrunc,
	"max":          KwMax,
	"min":          KwMin,
	"mod":          KwMod,
	"strlen":       KwStrlen,
	"isKnown":      KwIsKnown,
	"allKnown":     KwAllKnown,
	"anyKnown":     KwAnyKnown,
	"arraySize":    KwArraySize,
	"arrayMaxSize": KwArrayMaxSize,
	"real_to_int":  KwRealToInt,
	"print":        KwPrint,
	"pprint":       KwPprint,
}

// LookupKeyword returns the keyword kind for an exact, case-sensitive match.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// KeywordEntry is one spelling of the reserved word table.
type KeywordEntry struct {
	Spelling string `json:"spelling" yaml:"spelling" msgpack:"spelling"`
	Kind     Kind   `json:"-" yaml:"-" msgpack:"-"`
	Name     string `json:"kind" yaml:"kind" msgpack:"kind"`
	Group    string `json:"group" yaml:"group" msgpack:"group"`
}

// Keywords returns every reserved spelling ordered by kind, then spelling.
func Keywords() []KeywordEntry {
	out := make([]KeywordEntry, 0, len(keywords))
	for s, k := range keywords {
		out = append(out, KeywordEntry{Spelling: s, Kind: k, Name: k.String(), Group: k.Group().String()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Spelling < out[j].Spelling
	})
	return out
}
