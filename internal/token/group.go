package token

// Group classifies kinds by their role in the plan language.
type Group uint8

const (
	GroupNone Group = iota
	GroupIdent
	GroupLiteral
	GroupHidden
	GroupType
	GroupInterface
	GroupAttribute
	GroupCondition
	GroupBody
	GroupNodeState
	GroupOutcome
	GroupFailureType
	GroupCommandHandle
	GroupNodeRef
	GroupNodeProperty
	GroupLiteralKeyword
	GroupLogical
	GroupFunction
	GroupPunct
)

var groupNames = [...]string{
	GroupNone:           "none",
	GroupIdent:          "identifier",
	GroupLiteral:        "literal",
	GroupHidden:         "hidden",
	GroupType:           "type",
	GroupInterface:      "interface",
	GroupAttribute:      "attribute",
	GroupCondition:      "condition",
	GroupBody:           "body",
	GroupNodeState:      "node-state",
	GroupOutcome:        "outcome",
	GroupFailureType:    "failure-type",
	GroupCommandHandle:  "command-handle",
	GroupNodeRef:        "node-ref",
	GroupNodeProperty:   "node-property",
	GroupLiteralKeyword: "literal-keyword",
	GroupLogical:        "logical",
	GroupFunction:       "function",
	GroupPunct:          "punct",
}

func (g Group) String() string {
	if int(g) < len(groupNames) {
		return groupNames[g]
	}
	return "unknown"
}

// Group returns the role group of the kind.
func (k Kind) Group() Group {
	switch {
	case k == Ident:
		return GroupIdent
	case k >= IntLit && k <= StringLit:
		return GroupLiteral
	case k.IsHidden():
		return GroupHidden
	case k >= KwBoolean && k <= KwDuration:
		return GroupType
	case k >= KwIn && k <= KwReturns:
		return GroupInterface
	case k >= KwPriority && k <= KwComment:
		return GroupAttribute
	case k >= KwStartCondition && k <= KwSkipCondition:
		return GroupCondition
	case k >= KwConcurrence && k <= KwTimeout:
		return GroupBody
	case k >= KwWaitingState && k <= KwInactiveState:
		return GroupNodeState
	case k >= KwSuccessOutcome && k <= KwInterruptedOutcome:
		return GroupOutcome
	case k >= KwPreConditionFailed && k <= KwParentExited:
		return GroupFailureType
	case k >= KwCommandAccepted && k <= KwCommandInterfaceError:
		return GroupCommandHandle
	case k >= KwSelf && k <= KwSibling:
		return GroupNodeRef
	case k >= KwState && k <= KwEndTimepoint:
		return GroupNodeProperty
	case k >= KwTrue && k <= KwUnknown:
		return GroupLiteralKeyword
	case k >= And && k <= KwXor:
		return GroupLogical
	case k >= KwAbs && k <= KwPprint:
		return GroupFunction
	case k >= LParen && k <= Percent:
		return GroupPunct
	}
	return GroupNone
}
