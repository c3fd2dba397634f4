package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Environment variables holding credentials. They are never written to the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvOpenRouterKey    = "OPENROUTER_API_KEY"
	EnvSupabaseURL      = "SUPABASE_URL"
	EnvSupabaseKey      = "SUPABASE_ANON_KEY"
	EnvOpenAIKey        = "OPENAI_API_KEY"
	EnvPostgresDSN      = "DOCCHAT_POSTGRES_DSN"
	EnvESPassword       = "DOCCHAT_ES_PASSWORD"
	EnvArchiveAccessKey = "DOCCHAT_ARCHIVE_ACCESS_KEY"
	EnvArchiveSecretKey = "DOCCHAT_ARCHIVE_SECRET_KEY"
)

type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindBool
	kindDuration
	kindList
)

// setting binds a config key to a field of domain.Settings.
type setting struct {
	kind  settingKind
	field func(s *domain.Settings) any
}

// knownSettings lists every key the config file may hold.
var knownSettings = map[string]setting{
	"llm.model":               {kindString, func(s *domain.Settings) any { return &s.LLM.Model }},
	"llm.base_url":            {kindString, func(s *domain.Settings) any { return &s.LLM.BaseURL }},
	"llm.timeout":             {kindDuration, func(s *domain.Settings) any { return &s.LLM.Timeout }},
	"llm.max_tokens":          {kindInt, func(s *domain.Settings) any { return &s.LLM.MaxTokens }},
	"llm.temperature":         {kindFloat, func(s *domain.Settings) any { return &s.LLM.Temperature }},
	"retrieval.k":             {kindInt, func(s *domain.Settings) any { return &s.Retrieval.K }},
	"retrieval.threshold":     {kindFloat, func(s *domain.Settings) any { return &s.Retrieval.Threshold }},
	"chunker.chunk_size":      {kindInt, func(s *domain.Settings) any { return &s.Chunker.ChunkSize }},
	"chunker.chunk_overlap":   {kindInt, func(s *domain.Settings) any { return &s.Chunker.Overlap }},
	"embedding.provider":      {kindString, func(s *domain.Settings) any { return (*string)(&s.Embedding.Provider) }},
	"embedding.model":         {kindString, func(s *domain.Settings) any { return &s.Embedding.Model }},
	"embedding.base_url":      {kindString, func(s *domain.Settings) any { return &s.Embedding.BaseURL }},
	"embedding.dimensions":    {kindInt, func(s *domain.Settings) any { return &s.Embedding.Dimensions }},
	"vector_store.backend":    {kindString, func(s *domain.Settings) any { return (*string)(&s.VectorStore.Backend) }},
	"vector_store.url":        {kindString, func(s *domain.Settings) any { return &s.VectorStore.URL }},
	"vector_store.dsn":        {kindString, func(s *domain.Settings) any { return &s.VectorStore.DSN }},
	"vector_store.addresses":  {kindList, func(s *domain.Settings) any { return &s.VectorStore.Addresses }},
	"vector_store.index":      {kindString, func(s *domain.Settings) any { return &s.VectorStore.Index }},
	"vector_store.username":   {kindString, func(s *domain.Settings) any { return &s.VectorStore.Username }},
	"vector_store.path":       {kindString, func(s *domain.Settings) any { return &s.VectorStore.Path }},
	"vector_store.timeout":    {kindDuration, func(s *domain.Settings) any { return &s.VectorStore.Timeout }},
	"ingest.workers":          {kindInt, func(s *domain.Settings) any { return &s.Ingest.Workers }},
	"ingest.max_upload_size":  {kindString, func(s *domain.Settings) any { return &s.Ingest.MaxUploadSize }},
	"archive.endpoint":        {kindString, func(s *domain.Settings) any { return &s.Archive.Endpoint }},
	"archive.bucket":          {kindString, func(s *domain.Settings) any { return &s.Archive.Bucket }},
	"archive.use_ssl":         {kindBool, func(s *domain.Settings) any { return &s.Archive.UseSSL }},
}

// SettingsService reads settings from the config store and the environment.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get returns the defaults overlaid with stored values and environment credentials.
func (s *SettingsService) Get() (*domain.Settings, error) {
	result := domain.DefaultSettings()

	for key, def := range knownSettings {
		if _, ok := s.configStore.Get(key); !ok {
			continue
		}
		s.load(key, def, &result)
	}

	s.applyEnv(&result)
	return &result, nil
}

// Save validates and persists settings. Credentials are never written.
func (s *SettingsService) Save(cfg *domain.Settings) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	for _, key := range s.Keys() {
		if err := s.configStore.Set(key, storedValue(knownSettings[key], cfg)); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return s.configStore.Save()
}

// SetModel updates the default language model.
func (s *SettingsService) SetModel(model string) error {
	return s.Set("llm.model", model)
}

// Set parses value for key, validates the result and saves it.
func (s *SettingsService) Set(key, value string) error {
	def, ok := knownSettings[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q (known: %s)", domain.ErrInvalidInput, key, strings.Join(s.Keys(), ", "))
	}

	current, err := s.Get()
	if err != nil {
		return err
	}
	if err := parseInto(def, def.field(current), value); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	if err := current.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(key, storedValue(def, current)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return s.configStore.Save()
}

// Keys returns the settable keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(knownSettings))
	for k := range knownSettings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// load copies a stored value into its field. Values of the wrong type are ignored.
func (s *SettingsService) load(key string, def setting, cfg *domain.Settings) {
	switch ptr := def.field(cfg).(type) {
	case *string:
		if v := s.configStore.GetString(key); v != "" {
			*ptr = v
		}
	case *int:
		if v := s.configStore.GetInt(key); v != 0 {
			*ptr = v
		}
	case *float64:
		raw, _ := s.configStore.Get(key)
		switch raw.(type) {
		case float64, int64, int:
			*ptr = s.configStore.GetFloat(key)
		}
	case *bool:
		*ptr = s.configStore.GetBool(key)
	case *time.Duration:
		if d, err := time.ParseDuration(s.configStore.GetString(key)); err == nil {
			*ptr = d
		}
	case *[]string:
		if v := s.configStore.GetStringSlice(key); v != nil {
			*ptr = v
		}
	}
}

func (s *SettingsService) applyEnv(cfg *domain.Settings) {
	overlay := func(dst *string, name string) {
		if v := strings.TrimSpace(s.getenv(name)); v != "" {
			*dst = v
		}
	}
	overlay(&cfg.LLM.APIKey, EnvOpenRouterKey)
	overlay(&cfg.VectorStore.URL, EnvSupabaseURL)
	overlay(&cfg.VectorStore.Key, EnvSupabaseKey)
	overlay(&cfg.Embedding.APIKey, EnvOpenAIKey)
	overlay(&cfg.VectorStore.DSN, EnvPostgresDSN)
	overlay(&cfg.VectorStore.Password, EnvESPassword)
	overlay(&cfg.Archive.AccessKey, EnvArchiveAccessKey)
	overlay(&cfg.Archive.SecretKey, EnvArchiveSecretKey)
}

// parseInto parses value into the field pointer ptr.
func parseInto(def setting, ptr any, value string) error {
	value = strings.TrimSpace(value)
	switch p := ptr.(type) {
	case *string:
		*p = value
	case *int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%q is not an integer", value)
		}
		*p = n
	case *float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", value)
		}
		*p = f
	case *bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%q is not true or false", value)
		}
		*p = b
	case *time.Duration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%q is not a duration (e.g. 30s)", value)
		}
		*p = d
	case *[]string:
		var list []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		*p = list
	default:
		return fmt.Errorf("unsupported setting kind %d", def.kind)
	}
	return nil
}

// storedValue returns the field's value in the form the config file keeps.
func storedValue(def setting, cfg *domain.Settings) any {
	switch p := def.field(cfg).(type) {
	case *string:
		return *p
	case *int:
		return *p
	case *float64:
		return *p
	case *bool:
		return *p
	case *time.Duration:
		return p.String()
	case *[]string:
		return *p
	default:
		return nil
	}
}
