package contract

import "fmt"

// ProgramError is a failure the program reports back through the host. The code
// is stable and is what off-chain callers match on.
type ProgramError struct {
	Code uint32
	Name string
	Msg  string
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Msg)
}

// Domain errors.
var (
	ErrPaused                 = &ProgramError{6000, "Paused", "Donations are paused"}
	ErrInvalidAmount          = &ProgramError{6001, "InvalidAmount", "Amount must be greater than zero"}
	ErrNicknameTooLong        = &ProgramError{6002, "NicknameTooLong", "Nickname exceeds maximum length"}
	ErrDescriptionTooLong     = &ProgramError{6003, "DescriptionTooLong", "Description exceeds maximum length"}
	ErrOverflow               = &ProgramError{6004, "Overflow", "Arithmetic overflow"}
	ErrUnauthorized           = &ProgramError{6005, "Unauthorized", "Unauthorized"}
	ErrInvalidDonorIndex      = &ProgramError{6006, "InvalidDonorIndex", "Invalid donor index account"}
	ErrInvalidDonorIndexOwner = &ProgramError{6007, "InvalidDonorIndexOwner", "Donor index must be owned by this program"}
	ErrAlreadyInitialized     = &ProgramError{6008, "AlreadyInitialized", "Config already initialized"}
)

// Framework errors raised while binding accounts and decoding payloads.
var (
	ErrInvalidInstruction           = &ProgramError{101, "InstructionFallbackNotFound", "Fallback functions are not supported"}
	ErrInstructionDidNotDeserialize = &ProgramError{102, "InstructionDidNotDeserialize", "The program could not deserialize the given instruction"}
	ErrConstraintMut                = &ProgramError{2000, "ConstraintMut", "A mut constraint was violated"}
	ErrInvalidAccount               = &ProgramError{2006, "ConstraintSeeds", "A seeds constraint was violated"}
	ErrConstraintAddress            = &ProgramError{2012, "ConstraintAddress", "An address constraint was violated"}
	ErrAccountDiscriminatorMismatch = &ProgramError{3002, "AccountDiscriminatorMismatch", "8 byte discriminator did not match what was expected"}
	ErrAccountDidNotDeserialize     = &ProgramError{3003, "AccountDidNotDeserialize", "Failed to deserialize the account"}
	ErrNotEnoughAccountKeys         = &ProgramError{3005, "AccountNotEnoughKeys", "Not enough account keys given to the instruction"}
	ErrAccountOwnedByWrongProgram   = &ProgramError{3007, "AccountOwnedByWrongProgram", "The given account is owned by a different program than expected"}
	ErrInvalidProgramID             = &ProgramError{3008, "InvalidProgramId", "Program ID was not as expected"}
	ErrMissingSignature             = &ProgramError{3010, "AccountNotSigner", "The given account did not sign"}
	ErrAccountNotInitialized        = &ProgramError{3012, "AccountNotInitialized", "The program expected this account to be already initialized"}
)

var errorsByCode = func() map[uint32]*ProgramError {
	all := []*ProgramError{
		ErrPaused, ErrInvalidAmount, ErrNicknameTooLong, ErrDescriptionTooLong, ErrOverflow,
		ErrUnauthorized, ErrInvalidDonorIndex, ErrInvalidDonorIndexOwner, ErrAlreadyInitialized,
		ErrInvalidInstruction, ErrInstructionDidNotDeserialize, ErrConstraintMut, ErrInvalidAccount,
		ErrConstraintAddress, ErrAccountDiscriminatorMismatch, ErrAccountDidNotDeserialize,
		ErrNotEnoughAccountKeys, ErrAccountOwnedByWrongProgram, ErrInvalidProgramID,
		ErrMissingSignature, ErrAccountNotInitialized,
	}
	m := make(map[uint32]*ProgramError, len(all))
	for _, e := range all {
		m[e.Code] = e
	}
	return m
}()

// ErrorFromCode maps a numeric code reported by the program back to its error.
// Example payload: ErrorFromCode(6000) returns ErrPaused
func ErrorFromCode(code uint32) (*ProgramError, bool) {
	e, ok := errorsByCode[code]
	return e, ok
}
