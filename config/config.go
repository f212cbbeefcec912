package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvFileVar = "SCREENSNIP_ENV"

	ActionExtract          = "extract"
	ActionExtractTranslate = "extract_translate"
	ActionCopy             = "copy"
	ActionSave             = "save"
	ActionPreview          = "preview"

	ExtractorRapidOCR  = "rapidocr"
	ExtractorTesseract = "tesseract"
)

// Settings is the immutable per-run view of user configuration. The pipeline
// takes one snapshot at session start and never re-reads mid-run.
type Settings struct {
	PrimaryAction      string
	TargetLang         string
	LangPair           [2]string
	PreserveLineBreaks bool
	Extractor          string
	Hotkey             string
	ViewHotkey         string
	EnableFileLogging  bool
	EngineDeadlineSec  int
	EnginesDir         string
}

// Load reads settings from sources in priority order:
// 1) .env in the executable directory
// 2) if not found, SCREENSNIP_ENV as a path to a config file
// 3) process environment, then code defaults
func Load() (Settings, error) {
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	s := Settings{
		PrimaryAction:      normalizeAction(os.Getenv("PRIMARY_ACTION")),
		TargetLang:         strings.ToLower(getEnvWithDefault("TARGET_LANG", "zh")),
		LangPair:           parseLangPair(os.Getenv("LANG_PAIR")),
		PreserveLineBreaks: strings.ToLower(os.Getenv("PRESERVE_LINE_BREAKS")) == "true",
		Extractor:          normalizeExtractor(os.Getenv("EXTRACTOR")),
		Hotkey:             getEnvWithDefault("HOTKEY", "Alt+Q"),
		ViewHotkey:         getEnvWithDefault("VIEW_HOTKEY", "F3"),
		EnableFileLogging:  strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		EngineDeadlineSec:  parsePositiveInt(os.Getenv("ENGINE_DEADLINE_SEC"), 60),
		EnginesDir:         resolveEnginesDir(),
	}
	return s, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}
	if alt := os.Getenv(EnvFileVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return ""
}

func resolveEnginesDir() string {
	if dir := strings.TrimSpace(os.Getenv("ENGINES_DIR")); dir != "" {
		return dir
	}
	execPath, err := os.Executable()
	if err != nil {
		return "engines"
	}
	return filepath.Join(filepath.Dir(execPath), "engines")
}

// normalizeAction maps anything unrecognized to preview, the safe fallback.
func normalizeAction(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case ActionExtract, "ocr":
		return ActionExtract
	case ActionExtractTranslate, "ocr_translate":
		return ActionExtractTranslate
	case ActionCopy:
		return ActionCopy
	case ActionSave:
		return ActionSave
	default:
		return ActionPreview
	}
}

func normalizeExtractor(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case ExtractorTesseract:
		return ExtractorTesseract
	default:
		return ExtractorRapidOCR
	}
}

// parseLangPair parses "zh,en" style values. The translation engine works
// with exactly two languages; the source for a run is whichever of the pair
// is not the requested target.
func parseLangPair(value string) [2]string {
	pair := [2]string{"zh", "en"}
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return pair
	}
	a := strings.ToLower(strings.TrimSpace(parts[0]))
	b := strings.ToLower(strings.TrimSpace(parts[1]))
	if a == "" || b == "" || a == b {
		return pair
	}
	return [2]string{a, b}
}

func parsePositiveInt(value string, def int) int {
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return n
	}
	return def
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
