package hooks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/dispatch/internal/logger"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the hooks configuration file.
const ConfigFileName = ".dispatch.hooks.yml"

// LoadConfig loads the hooks configuration from the working directory.
// Returns nil if the config file doesn't exist (hooks are optional).
// Returns an error only if the file exists but cannot be parsed.
func LoadConfig(workDir string) (*Config, error) {
	configPath := filepath.Join(workDir, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No hooks config found at %s", configPath)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hooks config: %w", err)
	}

	logger.Debug("Loaded hooks config from %s (version: %d)", configPath, cfg.Version)
	return &cfg, nil
}

// Variables holds template variables that can be expanded in hook commands.
type Variables struct {
	ID       string // record id
	Customer string
	Date     string
	File     string // rendered document, if any
}

// Execute runs a hook command and returns its output.
// Template variables in the command ({{id}}, {{customer}}, {{date}}, {{file}})
// are shell-quoted and expanded before execution.
// On error, returns an error message as output and nil error (graceful degradation).
// Only returns error for context cancellation.
func Execute(ctx context.Context, hook *HookConfig, workDir string, vars Variables) (string, error) {
	if hook == nil || hook.Command == "" {
		return "", nil
	}

	command := expandVariables(hook.Command, vars)
	logger.Debug("Executing hook command: %s", command)

	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	// Check for context cancellation (propagate this)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if execCtx.Err() == context.DeadlineExceeded {
		logger.Warn("Hook command timed out after %ds: %s", timeout, command)
		return fmt.Sprintf("[Hook timed out after %ds]\nPartial output:\n%s", timeout, stdout.String()), nil
	}

	if err != nil {
		logger.Warn("Hook command failed: %v", err)
		output := stdout.String()
		if stderr.Len() > 0 {
			output += "\n[stderr]\n" + stderr.String()
		}
		return fmt.Sprintf("[Hook command failed: %v]\n%s", err, output), nil
	}

	output := stdout.String()
	if stderr.Len() > 0 {
		logger.Debug("Hook stderr: %s", stderr.String())
		output += "\n[stderr]\n" + stderr.String()
	}

	logger.Debug("Hook executed successfully, output length: %d bytes", len(output))
	return output, nil
}

// ExecuteAll runs hooks in order and joins their non-empty output with blank
// lines. A failing hook does not stop the ones after it.
func ExecuteAll(ctx context.Context, hooks []*HookConfig, workDir string, vars Variables) (string, error) {
	var outputs []string
	for _, hook := range hooks {
		output, err := Execute(ctx, hook, workDir, vars)
		if err != nil {
			return "", err
		}
		if output != "" {
			outputs = append(outputs, output)
		}
	}
	return strings.Join(outputs, "\n"), nil
}

// Run loads the hooks config from workDir and runs the hooks for event.
// A missing or broken config is logged and skipped; only context
// cancellation is returned.
func Run(ctx context.Context, event, workDir string, vars Variables) (string, error) {
	cfg, err := LoadConfig(workDir)
	if err != nil {
		logger.Warn("Skipping %s hooks: %v", event, err)
		return "", nil
	}
	hooks := cfg.For(event)
	if len(hooks) == 0 {
		return "", nil
	}
	logger.Info("Running %d %s hook(s) for %s", len(hooks), event, vars.ID)
	return ExecuteAll(ctx, hooks, workDir, vars)
}

// expandVariables replaces {{variable}} placeholders in the command string.
func expandVariables(command string, vars Variables) string {
	replacements := map[string]string{
		"{{id}}":       quote(vars.ID),
		"{{customer}}": quote(vars.Customer),
		"{{date}}":     quote(vars.Date),
		"{{file}}":     quote(vars.File),
	}

	result := command
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// quote wraps s in single quotes for sh. Customer names are free text.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
