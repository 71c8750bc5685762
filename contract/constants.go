package contract

import "github.com/gagliardetto/solana-go"

// ProgramID is the address the donation program is deployed under.
var ProgramID = solana.MustPublicKeyFromBase58("7XhmW42LmPuk2gcHjjsDwGiTurWDrUFP9yff9AK4mkB4")

// -----------------------------------------------------------------------------
// Validation Limits
// -----------------------------------------------------------------------------

const (
	// TopSize is the capacity of the leaderboard kept inside Config.
	TopSize = 10
	// MaxNicknameLen limits donor nicknames, in bytes.
	MaxNicknameLen = 32
	// MaxDescriptionLen limits donor descriptions, in bytes.
	MaxDescriptionLen = 256
)

// -----------------------------------------------------------------------------
// Address Seeds
// -----------------------------------------------------------------------------

const (
	ConfigSeed     = "config"
	DonorSeed      = "donor"
	DonorIndexSeed = "donor_index"
)

// -----------------------------------------------------------------------------
// Record Sizes
// -----------------------------------------------------------------------------

// Every record starts with an 8 byte discriminator and reserves the maximum
// size of its variable fields up front so it never needs a realloc.
const (
	discriminatorSize = 8
	addressSize       = 32

	TopEntrySize   = 8 + addressSize + addressSize + 8
	ConfigSize     = discriminatorSize + addressSize + addressSize + 1 + 8 + 8 + TopEntrySize*TopSize
	DonorSize      = discriminatorSize + addressSize + 8 + 8 + 8 + (4 + MaxNicknameLen) + (4 + MaxDescriptionLen) + 8
	DonorIndexSize = discriminatorSize + 8 + addressSize + addressSize
)

// -----------------------------------------------------------------------------
// Instruction Names
// -----------------------------------------------------------------------------

const (
	InstructionInitializeConfig = "initialize_config"
	InstructionDonate           = "donate"
	InstructionUpdateProfile    = "update_profile"
	InstructionSetTreasury      = "set_treasury"
	InstructionSetPaused        = "set_paused"
	InstructionSetAdmin         = "set_admin"
)
