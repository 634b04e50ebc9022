package errs

import "fmt"

// CheckCode identifies a class of program defect that static analysis is
// expected to reject ahead of evaluation.
type CheckCode uint16

// Stable check codes - do not change values.
const (
	CheckUnknown CheckCode = 0

	// Expression shape.
	CheckBadSyntaxBinding       CheckCode = 1001
	CheckExpectedName           CheckCode = 1002
	CheckNonFunctionApplication CheckCode = 1003
	CheckBadFunctionName        CheckCode = 1004
	CheckBadMatchSyntax         CheckCode = 1005
	CheckUnevaluableExpression  CheckCode = 1006

	// Arity.
	CheckIncorrectArgumentCount   CheckCode = 1101
	CheckRequiresAtLeastArguments CheckCode = 1102

	// Typing.
	CheckTypeValueError         CheckCode = 1201
	CheckUnionTypeValueError    CheckCode = 1202
	CheckExpectedOptionalValue  CheckCode = 1203
	CheckExpectedResponseValue  CheckCode = 1204
	CheckCouldNotDetermineType  CheckCode = 1205
	CheckInvalidTypeDescription CheckCode = 1206

	// Name resolution.
	CheckNameAlreadyUsed    CheckCode = 1301
	CheckUndefinedVariable  CheckCode = 1302
	CheckUndefinedFunction  CheckCode = 1303
	CheckNoSuchDataVariable CheckCode = 1304
	CheckNoSuchMap          CheckCode = 1305
	CheckNoSuchTupleField   CheckCode = 1306
	CheckCircularReference  CheckCode = 1307

	// Definitions.
	CheckDefineNotAtTopLevel              CheckCode = 1401
	CheckPublicFunctionMustReturnResponse CheckCode = 1402

	// Data limits.
	CheckValueTooLarge CheckCode = 1501

	// Execution modes.
	CheckWriteAttemptedInReadOnly CheckCode = 1601
)

// ID returns the code as "CHK1201" format.
func (c CheckCode) ID() string {
	return fmt.Sprintf("CHK%04d", uint16(c))
}

// RuntimeCode identifies a failure that only the executing chain state
// could reveal; the program itself may be perfectly well formed.
type RuntimeCode uint16

// Stable runtime codes - do not change values.
const (
	RuntimeUnknown RuntimeCode = 0

	// Identifier construction.
	RuntimeBadNameValue RuntimeCode = 2001

	// Arithmetic.
	RuntimeArithmeticOverflow  RuntimeCode = 2101
	RuntimeArithmeticUnderflow RuntimeCode = 2102
	RuntimeDivisionByZero      RuntimeCode = 2103
	RuntimeArithmetic          RuntimeCode = 2104

	// Cost accounting.
	RuntimeCostBalanceExceeded RuntimeCode = 2201
	RuntimeCostOverflow        RuntimeCode = 2202

	// Execution limits.
	RuntimeMaxStackDepthReached   RuntimeCode = 2301
	RuntimeMaxContextDepthReached RuntimeCode = 2302

	// Chain state.
	RuntimeUnknownBlockHeaderHash RuntimeCode = 2401
	RuntimeNoSenderInContext      RuntimeCode = 2402

	// Explicit failure forms.
	RuntimeUnwrapFailure RuntimeCode = 2501
)

// ID returns the code as "RUN2101" format.
func (c RuntimeCode) ID() string {
	return fmt.Sprintf("RUN%04d", uint16(c))
}
