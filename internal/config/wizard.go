package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to thuvien! Let's configure the library.")
	fmt.Println()

	cfg := DefaultConfig()
	if existing, err := Load(path); err == nil {
		cfg = existing
	}

	// 1. Backend address.
	urlPrompt := promptui.Prompt{
		Label:    "Chat backend base URL",
		Default:  cfg.Backend.BaseURL,
		Validate: validateBaseURL,
	}
	baseURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}
	cfg.Backend.BaseURL = baseURL

	// 2. Token. Leaving it blank keeps the current one.
	tokenPrompt := promptui.Prompt{
		Label: "Bearer token (blank to keep, or set THUVIEN_BACKEND__TOKEN)",
		Mask:  '*',
	}
	token, err := tokenPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	if token != "" {
		cfg.Backend.Token = token
	}

	// 3. Language.
	langPrompt := promptui.Select{
		Label: "Interface language",
		Items: []string{"vi - Tiếng Việt", "en - English"},
	}
	langIdx, _, err := langPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}
	cfg.Language = []string{"vi", "en"}[langIdx]

	// 4. Search bodies by default?
	bodyPrompt := promptui.Select{
		Label: "Search sutra bodies by default",
		Items: []string{"no - titles only", "yes - titles and bodies"},
	}
	bodyIdx, _, err := bodyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("search selection: %w", err)
	}
	cfg.Search.IncludeBody = bodyIdx == 1

	// 5. Semantic search.
	embedPrompt := promptui.Select{
		Label: "Embedding provider for semantic search",
		Items: []string{"none", "openai", "ollama"},
	}
	_, provider, err := embedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}
	cfg.Embeddings.Provider = EmbeddingProvider(provider)
	cfg.Embeddings.Model = DefaultEmbeddingModel(cfg.Embeddings.Provider)

	if envVar := APIKeyEnvVar(cfg.Embeddings.Provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running thuvien index.\n", envVar)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateBaseURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("enter an absolute http(s) url")
	}
	return nil
}
