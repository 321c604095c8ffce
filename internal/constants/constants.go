package constants

// Centralized constants for env keys, routes and shared strings.
const (
	// Environment variable keys
	EnvServerAddress = "LOR_ADDRESS"
	EnvDatabasePath  = "LOR_DB_PATH"
	EnvContentPath   = "LOR_CONTENT_PATH"
	EnvRandomSeed    = "LOR_SEED"
	EnvDebug         = "LOR_DEBUG"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"

	RouteCards   = "/cards"
	RouteUnits   = "/units"
	RouteWeapons = "/weapons"

	RouteBattles         = "/battles"
	RouteBattleByID      = "/battles/:battleID"
	RouteBattleSpeed     = "/battles/:battleID/speed"
	RouteBattlePlan      = "/battles/:battleID/plan"
	RouteBattleResolve   = "/battles/:battleID/resolve"
	RouteBattleLog       = "/battles/:battleID/log"
	RouteBattleSnapshots = "/battles/:battleID/snapshots"
	RouteBattleRewind    = "/battles/:battleID/rewind"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest  = "Invalid request"
	ErrInvalidBattleID = "Invalid battle ID"
	ErrBattleNotFound  = "Battle not found"

	ErrFailedFetchCards   = "Failed to fetch cards"
	ErrFailedFetchUnits   = "Failed to fetch units"
	ErrFailedFetchBattles = "Failed to fetch battles"
	ErrFailedCreateBattle = "Failed to create battle"
	ErrFailedSaveBattle   = "Failed to save battle"

	ErrBattleNotPlanning   = "Battle is not in the planning phase"
	ErrBattleNotRollPhase  = "Battle is not in the speed roll phase"
	ErrBattleAlreadyOver   = "Battle is already over"
	ErrUnknownUnit         = "Unknown unit index"
	ErrUnknownSlot         = "Unknown slot index"
	ErrUnknownCard         = "Unknown card"
	ErrCardOnCooldown      = "Card is on cooldown"
	ErrSlotStunned         = "Slot is stunned"
	ErrSnapshotNotFound    = "Snapshot not found"
	ErrFailedSaveSnapshot  = "Failed to save snapshot"
	ErrFailedFetchSnapshot = "Failed to fetch snapshots"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldRound    = "round"
	LogFieldPhase    = "phase"
	LogFieldUnit     = "unit"
	LogFieldCard     = "card"
	LogFieldAddr     = "addr"
	LogFieldPath     = "path"
	LogFieldCount    = "count"
)
