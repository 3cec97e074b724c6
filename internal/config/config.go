package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client when downloading remote inputs.
var UserAgent = "Go-MedView/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Go MedView"
	AppID          = "com.github.tartampluch.go-medview"
	KeyringService = "com.github.tartampluch.go-medview"
	LogFileName    = "app.log"

	// Command names, one per binary.
	CmdEmay      = "emay2medview"
	CmdO2Insight = "o2insight2medview"
	CmdDump      = "medviewdump"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the log file.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating the cache directory holding the log.
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags, Descriptions & Environment
// -----------------------------------------------------------------------------

const (
	FlagDebug            = "debug"
	FlagOutput           = "output-file"
	FlagOutputShort      = "o"
	FlagInputFormat      = "input-format"
	FlagInputFormatShort = "f"
	FlagTimeOffset       = "time-offset"
	FlagDateFormat       = "date-format"
	FlagTimeFormat       = "time-format"
	FlagLocaleDateFormat = "locale-date-format"
	FlagUser             = "user"
	FlagSavePassword     = "save-password"
	FlagDumpTimeFormat   = "time-format"
	FlagDumpCount        = "count"

	FlagDescDebug            = "Enable debug logging"
	FlagDescOutput           = "Uses location and naming convention of the input file if not specified"
	FlagDescInputFormat      = "CSV file data format (emay, o2insight)"
	FlagDescTimeOffset       = "Seconds added to every timestamp before writing"
	FlagDescDateFormat       = "strftime format tried first for dates (e.g. %d.%m.%Y)"
	FlagDescTimeFormat       = "strftime format tried first for times (e.g. %H:%M:%S)"
	FlagDescLocaleDateFormat = "Date pattern deciding day-first vs month-first (defaults to the platform locale)"
	FlagDescUser             = "User name for HTTP basic auth when the input is a URL"
	FlagDescSavePassword     = "Store the MEDVIEW_PASSWORD value in the OS keyring for --user"
	FlagDescDumpTimeFormat   = "strftime format used to print timestamps"
	FlagDescDumpCount        = "Only print the record count from each header"

	ShortEmay      = "Convert an EMAY pulse oximeter CSV file into a MedView DAT file"
	ShortO2Insight = "Convert an O2 Insight Pro CSV file into a MedView DAT file"
	ShortDump      = "Print the records stored in MedView DAT files"
	UseConvert     = " INPUT"
	UseDump        = " FILE..."

	MsgVersionTemplate = "{{.Name}} version {{.Version}} (%s/%s)\n"

	// Environment variables.
	EnvDateFormat       = "D_FMT"
	EnvTimeFormat       = "T_FMT"
	EnvInputFormat      = "CSV_FORMAT"
	EnvLocaleDateFormat = "LOCALE_D_FMT"
	EnvPassword         = "MEDVIEW_PASSWORD"

	// Viper keys.
	KeyOutput           = "output"
	KeyInputFormat      = "input_format"
	KeyTimeOffset       = "time_offset"
	KeyDateFormat       = "date_format"
	KeyTimeFormat       = "time_format"
	KeyLocaleDateFormat = "locale_date_format"
	KeyUser             = "user"
	KeyPassword         = "password"
	KeySavePassword     = "save_password"

	DefaultDumpTimeFormat = "%Y-%m-%d %H:%M:%S"
	DumpLineFormat        = "%s\t%d\t%d\n"
	DumpHeaderFormat      = "%s: %d records\n"
)

// -----------------------------------------------------------------------------
// Input Formats & Containers
// -----------------------------------------------------------------------------

const (
	FormatEmay      = "emay"
	FormatO2Insight = "o2insight"

	ExtXLSX = ".xlsx"
	ExtDAT  = ".dat"

	// Remote inputs are recognized by scheme prefix.
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
	SchemeSep   = "://"

	// DefaultRemoteName names the output of a URL without a file name.
	DefaultRemoteName = "download"
)

// SupportedFormats lists the values accepted by --input-format.
var SupportedFormats = []string{FormatEmay, FormatO2Insight}

// -----------------------------------------------------------------------------
// Vendor CSV Layouts
// -----------------------------------------------------------------------------

// EmayHeader is the exact header row written by the EMAY desktop software.
var EmayHeader = []string{"Date", "Time", "SpO2(%)", "PR(bpm)"}

// O2InsightHeader is the prefix of the header row written by O2 Insight Pro.
// Extra trailing columns are tolerated.
var O2InsightHeader = []string{"Time", "SpO2(%)", "Pulse Rate(bpm)", "Motion", "SpO2 Reminder", "PR Reminder"}

// O2InsightTimeLayouts are tried in order on the "Time" column, e.g.
// "09:10:35PM May 11, 2024". The app seems to ignore OS date settings.
var O2InsightTimeLayouts = []string{
	"3:04:05PM January 2, 2006",
	"3:04:05PM Jan 2, 2006",
}

const (
	// O2 Insight appends rows with these values when a recording ends.
	O2InsightEndSpO2  = 255
	O2InsightEndPulse = 65535

	UTF8BOM = "\ufeff"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	HeaderUserAgent     = "User-Agent"
)

// -----------------------------------------------------------------------------
// Localization
// -----------------------------------------------------------------------------

// SupportedLanguages defines the list of available message languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

const (
	DefaultLanguage = "en"

	TKeyConverting = "msg_converting" // Requires Input, Output
	TKeySummary    = "msg_summary"    // Requires Written, Files
	TKeySkipped    = "msg_skipped"    // Requires Skipped, Rejected
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInputMissing     = "input file does not exist"
	ErrInputOpen        = "failed to open input"
	ErrInputFormat      = "unsupported input format"
	ErrInputUnreadable  = "input is not a valid export"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrOutputOpen       = "failed to create output file"
	ErrOutputWrite      = "failed to write output file"
	ErrOutputFinalize   = "failed to finalize output file"
	ErrConversionHalted = "conversion stopped at a malformed row"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrDumpOpen         = "failed to open DAT file"
	ErrDumpRead         = "failed to read DAT file"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application finished"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgConvertStarted = "Conversion started"
	MsgConvertDone    = "Conversion finished"
	MsgSkipMissing    = "Missing data, skip"
	MsgSkipInvalid    = "Record out of range, skip"
	MsgFileRollover   = "Output file full, continuing in next file"
	MsgEmptyValue     = "Empty/invalid measurement value"
	MsgMalformedRow   = "Malformed row, stopping"
	MsgEndMarker      = "Skipping end-of-recording marker"
	MsgDumpFile       = "Dumping DAT file"
	MsgOverrideSkip   = "Override format unusable, using candidate formats"
	MsgLocaleDetected = "Platform locale detected"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgPassSaveFail   = "Failed to save password to keyring"
	MsgDownloadStart  = "Initiating input download"
	MsgDownloading    = "Input downloading"
	MsgBadStatus      = "Server returned error status"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"

	FallbackConverting = "Converting %s into %s ...\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyInput     = "input"
	LogKeyOutput    = "output"
	LogKeyFormat    = "format"
	LogKeyLine      = "line"
	LogKeyColumn    = "column"
	LogKeyValue     = "value"
	LogKeyTimestamp = "timestamp"
	LogKeyField     = "field"
	LogKeyKind      = "kind"
	LogKeyOffset    = "offset_s"
	LogKeyLocale    = "locale"
	LogKeyPattern   = "date_pattern"
	LogKeyDayFirst  = "day_first"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyUser      = "user"
	LogKeyStats     = "stats"
	LogKeyRows      = "rows"
	LogKeyWritten   = "written"
	LogKeySkipped   = "skipped"
	LogKeyRejected  = "rejected"
	LogKeyFiles     = "files"
	LogKeyDuration  = "duration_ms"
	LogKeyLength    = "content_length"

	// Startup Info Keys
	LogKeyBuild     = "build"
	LogKeyApp       = "app"
	LogKeyVersion   = "version"
	LogKeyCommit    = "commit"
	LogKeyBuildDate = "build_date"
	LogKeyGoVer     = "go_version"
	LogKeyEnv       = "env"
	LogKeyOS        = "os"
	LogKeyArch      = "arch"
	LogKeyPID       = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain    = "main"
	CompConvert = "convert"
	CompReader  = "reader"
	CompFetcher = "fetcher"
	CompI18n    = "i18n"
	CompLocale  = "locale"
	CompDump    = "dump"
	CompParser  = "parser"
)
