package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAPIKeys(t *testing.T) {
	testCases := []struct {
		name          string
		openaiKey     string
		geminiKey     string
		geminiKeys    string
		expectGemini  int
		expectError   bool
		errorContains string
	}{
		{
			name:        "valid OpenAI key",
			openaiKey:   "sk-1234567890abcdef1234567890abcdef",
			expectError: false,
		},
		{
			name:         "valid Gemini key",
			geminiKey:    "AIzaTest-1234567890abcdef1234567890",
			expectGemini: 1,
			expectError:  false,
		},
		{
			name:         "Gemini key list",
			geminiKeys:   "AIzaTest-1234567890abcdef1234567890, AIzaTest-abcdef1234567890abcdef1234",
			expectGemini: 2,
			expectError:  false,
		},
		{
			name:         "single key plus list merge",
			geminiKey:    "AIzaTest-1234567890abcdef1234567890",
			geminiKeys:   "AIzaTest-abcdef1234567890abcdef1234",
			expectGemini: 2,
			expectError:  false,
		},
		{
			name:          "invalid OpenAI key format",
			openaiKey:     "invalid-key",
			expectError:   true,
			errorContains: "invalid OPENAI_API_KEY format",
		},
		{
			name:          "OpenAI key too short",
			openaiKey:     "sk-short",
			expectError:   true,
			errorContains: "too short",
		},
		{
			name:          "invalid Gemini key format",
			geminiKey:     "invalid-key",
			expectError:   true,
			errorContains: "invalid GEMINI_API_KEY format",
		},
		{
			name:          "Gemini key too short",
			geminiKey:     "AIza-short",
			expectError:   true,
			errorContains: "too short",
		},
		{
			name:          "bad key inside list",
			geminiKeys:    "AIzaTest-1234567890abcdef1234567890,broken",
			expectError:   true,
			errorContains: "invalid GEMINI_API_KEY format",
		},
		{
			name:        "empty keys are allowed",
			expectError: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tc.openaiKey)
			t.Setenv("GEMINI_API_KEY", tc.geminiKey)
			t.Setenv("GEMINI_API_KEYS", tc.geminiKeys)

			apiKeys, err := GetAPIKeys()

			if tc.expectError {
				assert.Error(t, err)
				if tc.errorContains != "" {
					assert.Contains(t, err.Error(), tc.errorContains)
				}
			} else {
				assert.NoError(t, err)
				require.NotNil(t, apiKeys)
				assert.Equal(t, tc.openaiKey, apiKeys.OpenAI)
				assert.Len(t, apiKeys.Gemini, tc.expectGemini)
			}
		})
	}
}

func TestValidateAPIKeys(t *testing.T) {
	testCases := []struct {
		name    string
		apiKeys *APIKeys
	}{
		{
			name: "OpenAI key only",
			apiKeys: &APIKeys{
				OpenAI: "sk-1234567890abcdef1234567890abcdef",
			},
		},
		{
			name: "Gemini keys only",
			apiKeys: &APIKeys{
				Gemini: []string{"AIzaTest-1234567890abcdef1234567890"},
			},
		},
		{
			name: "both keys",
			apiKeys: &APIKeys{
				OpenAI: "sk-1234567890abcdef1234567890abcdef",
				Gemini: []string{"AIzaTest-1234567890abcdef1234567890"},
			},
		},
		{
			name:    "no keys - should not error (just info message)",
			apiKeys: &APIKeys{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, ValidateAPIKeys(tc.apiKeys))
		})
	}
}

func TestRequireAPIKeys(t *testing.T) {
	testCases := []struct {
		name          string
		apiKeys       *APIKeys
		expectError   bool
		errorContains string
	}{
		{
			name: "OpenAI key only",
			apiKeys: &APIKeys{
				OpenAI: "sk-1234567890abcdef1234567890abcdef",
			},
			expectError: false,
		},
		{
			name: "Gemini key only",
			apiKeys: &APIKeys{
				Gemini: []string{"AIzaTest-1234567890abcdef1234567890"},
			},
			expectError: false,
		},
		{
			name:          "no keys - should fail for cloud operations",
			apiKeys:       &APIKeys{},
			expectError:   true,
			errorContains: "cloud engines require at least one API key",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireAPIKeys(tc.apiKeys)

			if tc.expectError {
				assert.Error(t, err)
				if tc.errorContains != "" {
					assert.Contains(t, err.Error(), tc.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetProjectRoot(t *testing.T) {
	root, err := GetProjectRoot()
	require.NoError(t, err)
	assert.NotEmpty(t, root)

	// Verify go.mod exists in the found root
	_, err = os.Stat(root + "/go.mod")
	assert.NoError(t, err, "go.mod should exist in project root")
}
