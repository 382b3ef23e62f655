package token

// Kind represents the category of a source token.
// Keyword kinds are declared in contiguous groups; Group relies on that order.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an NCName-style identifier.
	Ident

	// IntLit is an integer literal in base 10, 16 (0x), 8 (0o) or 2 (0b).
	IntLit
	// FloatLit is a floating point literal (fraction and/or exponent).
	FloatLit
	// StringLit is a quoted string literal, quotes included in Text.
	StringLit

	// Whitespace is a run of space, tab, form feed, CR and LF.
	Whitespace
	// LineComment runs from "//" through the end of line.
	LineComment
	// BlockComment runs from "/*" through the first "*/".
	BlockComment

	// declaration types
	KwBoolean  // Boolean
	KwInteger  // Integer
	KwReal     // Real
	KwString   // String
	KwDate     // Date
	KwDuration // Duration

	// interface declarations and external calls
	KwIn             // In
	KwInOut          // InOut
	KwCommand        // Command
	KwLookup         // Lookup
	KwLookupNow      // LookupNow
	KwLookupOnChange // LookupOnChange
	KwLibraryAction  // LibraryAction
	KwLibraryCall    // LibraryCall
	KwUpdate         // Update
	KwRequest        // Request
	KwReturns        // Returns

	// node attributes
	KwPriority             // Priority
	KwPermissions          // Permissions
	KwResource             // Resource
	KwResourcePriority     // ResourcePriority
	KwName                 // Name
	KwUpperBound           // UpperBound
	KwLowerBound           // LowerBound
	KwReleaseAtTermination // ReleaseAtTermination
	KwTolerance            // Tolerance
	KwComment              // Comment

	// node conditions, long and short spelling share a kind
	KwStartCondition     // StartCondition, Start
	KwEndCondition       // EndCondition, End
	KwExitCondition      // ExitCondition, Exit
	KwInvariantCondition // InvariantCondition, Invariant
	KwPostCondition      // PostCondition, Post
	KwPreCondition       // PreCondition, Pre
	KwRepeatCondition    // RepeatCondition, Repeat
	KwSkipCondition      // SkipCondition, Skip

	// node bodies and control flow
	KwConcurrence        // Concurrence
	KwSequence           // Sequence
	KwCheckedSequence    // CheckedSequence
	KwUncheckedSequence  // UncheckedSequence
	KwTry                // Try
	KwIf                 // if
	KwElseIf             // elseif
	KwElse               // else
	KwEndIf              // endif
	KwWhile              // while
	KwFor                // for
	KwOnCommand          // OnCommand
	KwOnMessage          // OnMessage
	KwSendMessage        // SendMessage
	KwWait               // Wait
	KwSynchronousCommand // SynchronousCommand
	KwTimeout            // Timeout

	// node states
	KwWaitingState        // WAITING
	KwExecutingState      // EXECUTING
	KwFinishingState      // FINISHING
	KwFailingState        // FAILING
	KwIterationEndedState // ITERATION_ENDED
	KwFinishedState       // FINISHED
	KwInactiveState       // INACTIVE

	// node outcomes
	KwSuccessOutcome     // SUCCESS
	KwFailureOutcome     // FAILURE
	KwSkippedOutcome     // SKIPPED
	KwInterruptedOutcome // INTERRUPTED

	// failure types
	KwPreConditionFailed       // PRE_CONDITION_FAILED
	KwPostConditionFailed      // POST_CONDITION_FAILED
	KwInvariantConditionFailed // INVARIANT_CONDITION_FAILED
	KwParentFailed             // PARENT_FAILED
	KwExited                   // EXITED
	KwParentExited             // PARENT_EXITED

	// command handle values
	KwCommandAccepted       // COMMAND_ACCEPTED
	KwCommandDenied         // COMMAND_DENIED
	KwCommandFailed         // COMMAND_FAILED
	KwCommandRcvdBySystem   // COMMAND_RCVD_BY_SYSTEM
	KwCommandSentToSystem   // COMMAND_SENT_TO_SYSTEM
	KwCommandSuccess        // COMMAND_SUCCESS
	KwCommandAborted        // COMMAND_ABORTED
	KwCommandAbortFailed    // COMMAND_ABORT_FAILED
	KwCommandInterfaceError // COMMAND_INTERFACE_ERROR

	// node references
	KwSelf    // Self
	KwParent  // Parent
	KwChild   // Child
	KwSibling // Sibling

	// node properties and timepoints
	KwState          // state
	KwOutcome        // outcome
	KwFailure        // failure
	KwCommandHandle  // command_handle
	KwStartTimepoint // START
	KwEndTimepoint   // END

	// literal keywords
	KwTrue    // true
	KwFalse   // false
	KwUnknown // UNKNOWN

	// logical operators; the symbolic forms lex to the same kinds
	And   // AND, &&
	Or    // OR, ||
	Not   // NOT, !
	KwXor // XOR

	// builtin functions
	KwAbs          // abs
	KwSqrt         // sqrt
	KwCeil         // ceil
	KwFloor        // floor
	KwRound        // round
	KwTrunc        // trunc
	KwMax          // max
	KwMin          // min
	KwMod          // mod
	KwStrlen       // strlen
	KwIsKnown      // isKnown
	KwAllKnown     // allKnown
	KwAnyKnown     // anyKnown
	KwArraySize    // arraySize
	KwArrayMaxSize // arrayMaxSize
	KwRealToInt    // real_to_int
	KwPrint        // print
	KwPprint       // pprint

	// punctuation and operators
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Semicolon // ;
	Colon     // :
	Period    // .
	Ellipsis  // ...
	HashParen // #(
	Equals    // =
	DEquals   // ==
	NEquals   // !=
	Less      // <
	LEq       // <=
	Greater   // >
	GEq       // >=
	Plus      // +
	Minus     // -
	Asterisk  // *
	Slash     // /
	Percent   // %

	kindCount
)

var kindNames = [...]string{
	Invalid: "INVALID",
	EOF:     "EOF",
	Ident:   "NCNAME",

	IntLit:    "INT",
	FloatLit:  "DOUBLE",
	StringLit: "STRING",

	Whitespace:   "WS",
	LineComment:  "LINE_COMMENT",
	BlockComment: "COMMENT",

	KwBoolean:  "BOOLEAN_KYWD",
	KwInteger:  "INTEGER_KYWD",
	KwReal:     "REAL_KYWD",
	KwString:   "STRING_KYWD",
	KwDate:     "DATE_KYWD",
	KwDuration: "DURATION_KYWD",

	KwIn:             "IN_KYWD",
	KwInOut:          "IN_OUT_KYWD",
	KwCommand:        "COMMAND_KYWD",
	KwLookup:         "LOOKUP_KYWD",
	KwLookupNow:      "LOOKUP_NOW_KYWD",
	KwLookupOnChange: "LOOKUP_ON_CHANGE_KYWD",
	KwLibraryAction:  "LIBRARY_ACTION_KYWD",
	KwLibraryCall:    "LIBRARY_CALL_KYWD",
	KwUpdate:         "UPDATE_KYWD",
	KwRequest:        "REQUEST_KYWD",
	KwReturns:        "RETURNS_KYWD",

	KwPriority:             "PRIORITY_KYWD",
	KwPermissions:          "PERMISSIONS_KYWD",
	KwResource:             "RESOURCE_KYWD",
	KwResourcePriority:     "RESOURCE_PRIORITY_KYWD",
	KwName:                 "NAME_KYWD",
	KwUpperBound:           "UPPER_BOUND_KYWD",
	KwLowerBound:           "LOWER_BOUND_KYWD",
	KwReleaseAtTermination: "RELEASE_AT_TERM_KYWD",
	KwTolerance:            "TOLERANCE_KYWD",
	KwComment:              "COMMENT_KYWD",

	KwStartCondition:     "START_CONDITION_KYWD",
	KwEndCondition:       "END_CONDITION_KYWD",
	KwExitCondition:      "EXIT_CONDITION_KYWD",
	KwInvariantCondition: "INVARIANT_CONDITION_KYWD",
	KwPostCondition:      "POST_CONDITION_KYWD",
	KwPreCondition:       "PRE_CONDITION_KYWD",
	KwRepeatCondition:    "REPEAT_CONDITION_KYWD",
	KwSkipCondition:      "SKIP_CONDITION_KYWD",

	KwConcurrence:        "CONCURRENCE_KYWD",
	KwSequence:           "SEQUENCE_KYWD",
	KwCheckedSequence:    "CHECKED_SEQUENCE_KYWD",
	KwUncheckedSequence:  "UNCHECKED_SEQUENCE_KYWD",
	KwTry:                "TRY_KYWD",
	KwIf:                 "IF_KYWD",
	KwElseIf:             "ELSEIF_KYWD",
	KwElse:               "ELSE_KYWD",
	KwEndIf:              "ENDIF_KYWD",
	KwWhile:              "WHILE_KYWD",
	KwFor:                "FOR_KYWD",
	KwOnCommand:          "ON_COMMAND_KYWD",
	KwOnMessage:          "ON_MESSAGE_KYWD",
	KwSendMessage:        "SEND_MESSAGE_KYWD",
	KwWait:               "WAIT_KYWD",
	KwSynchronousCommand: "SYNCHRONOUS_COMMAND_KYWD",
	KwTimeout:            "TIMEOUT_KYWD",

	KwWaitingState:        "WAITING_STATE_KYWD",
	KwExecutingState:      "EXECUTING_STATE_KYWD",
	KwFinishingState:      "FINISHING_STATE_KYWD",
	KwFailingState:        "FAILING_STATE_KYWD",
	KwIterationEndedState: "ITERATION_ENDED_STATE_KYWD",
	KwFinishedState:       "FINISHED_STATE_KYWD",
	KwInactiveState:       "INACTIVE_STATE_KYWD",

	KwSuccessOutcome:     "SUCCESS_OUTCOME_KYWD",
	KwFailureOutcome:     "FAILURE_OUTCOME_KYWD",
	KwSkippedOutcome:     "SKIPPED_OUTCOME_KYWD",
	KwInterruptedOutcome: "INTERRUPTED_OUTCOME_KYWD",

	KwPreConditionFailed:       "PRE_CONDITION_FAILED_KYWD",
	KwPostConditionFailed:      "POST_CONDITION_FAILED_KYWD",
	KwInvariantConditionFailed: "INVARIANT_CONDITION_FAILED_KYWD",
	KwParentFailed:             "PARENT_FAILED_KYWD",
	KwExited:                   "EXITED_KYWD",
	KwParentExited:             "PARENT_EXITED_KYWD",

	KwCommandAccepted:       "COMMAND_ACCEPTED_KYWD",
	KwCommandDenied:         "COMMAND_DENIED_KYWD",
	KwCommandFailed:         "COMMAND_FAILED_KYWD",
	KwCommandRcvdBySystem:   "COMMAND_RCVD_KYWD",
	KwCommandSentToSystem:   "COMMAND_SENT_KYWD",
	KwCommandSuccess:        "COMMAND_SUCCESS_KYWD",
	KwCommandAborted:        "COMMAND_ABORTED_KYWD",
	KwCommandAbortFailed:    "COMMAND_ABORT_FAILED_KYWD",
	KwCommandInterfaceError: "COMMAND_INTERFACE_ERROR_KYWD",

	KwSelf:    "SELF_KYWD",
	KwParent:  "PARENT_KYWD",
	KwChild:   "CHILD_KYWD",
	KwSibling: "SIBLING_KYWD",

	KwState:          "STATE_KYWD",
	KwOutcome:        "OUTCOME_KYWD",
	KwFailure:        "FAILURE_KYWD",
	KwCommandHandle:  "COMMAND_HANDLE_KYWD",
	KwStartTimepoint: "START_KYWD",
	KwEndTimepoint:   "END_KYWD",

	KwTrue:    "TRUE_KYWD",
	KwFalse:   "FALSE_KYWD",
	KwUnknown: "UNKNOWN_KYWD",

	And:   "AND_KYWD",
	Or:    "OR_KYWD",
	Not:   "NOT_KYWD",
	KwXor: "XOR_KYWD",

	KwAbs:          "ABS_KYWD",
	KwSqrt:         "SQRT_KYWD",
	KwCeil:         "CEIL_KYWD",
	KwFloor:        "FLOOR_KYWD",
	KwRound:        "ROUND_KYWD",
	KwTrunc:        "TRUNC_KYWD",
	KwMax:          "MAX_KYWD",
	KwMin:          "MIN_KYWD",
	KwMod:          "MOD_KYWD",
	KwStrlen:       "STRLEN_KYWD",
	KwIsKnown:      "IS_KNOWN_KYWD",
	KwAllKnown:     "ALL_KNOWN_KYWD",
	KwAnyKnown:     "ANY_KNOWN_KYWD",
	KwArraySize:    "ARRAY_SIZE_KYWD",
	KwArrayMaxSize: "ARRAY_MAX_SIZE_KYWD",
	KwRealToInt:    "REAL_TO_INT_KYWD",
	KwPrint:        "PRINT_KYWD",
	KwPprint:       "PPRINT_KYWD",

	LParen:    "LPAREN",
	RParen:    "RPAREN",
	LBrace:    "LBRACE",
	RBrace:    "RBRACE",
	LBracket:  "LBRACKET",
	RBracket:  "RBRACKET",
	Comma:     "COMMA",
	Semicolon: "SEMICOLON",
	Colon:     "COLON",
	Period:    "PERIOD",
	Ellipsis:  "ELLIPSIS",
	HashParen: "HASHPAREN",
	Equals:    "EQUALS",
	DEquals:   "DEQUALS",
	NEquals:   "NEQUALS",
	Less:      "LESS",
	LEq:       "LEQ",
	Greater:   "GREATER",
	GEq:       "GEQ",
	Plus:      "PLUS",
	Minus:     "MINUS",
	Asterisk:  "ASTERISK",
	Slash:     "SLASH",
	Percent:   "PERCENT",
}

// String returns the canonical upper-case name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether the kind marks the end of input.
func (k Kind) IsEOF() bool { return k == EOF }

// IsHidden reports whether tokens of this kind are excluded from the
// significant stream (whitespace and comments).
func (k Kind) IsHidden() bool {
	return k == Whitespace || k == LineComment || k == BlockComment
}

// KindFromString is the inverse of Kind.String.
func KindFromString(name string) (Kind, bool) {
	for k := Invalid; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return Invalid, false
}

// KindCount returns the number of declared kinds.
func KindCount() int { return int(kindCount) }
