package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $EDITOR (fallback: "vi").
// It does not run the editor itself. Callers hand the returned *exec.Cmd to
// tea.ExecProcess so Bubble Tea releases the terminal while it runs.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const instructionComment = `<!--
TerminalSky: write your post below.

- SAVE and EXIT to send (e.g., :wq in vi).
- Emptying the file cancels.
- Posts are limited to 300 characters.
%s-->

`

func instructions(replyTo string) string {
	line := ""
	if replyTo = strings.TrimSpace(replyTo); replyTo != "" {
		line = "- Replying to " + replyTo + "\n"
	}
	return fmt.Sprintf(instructionComment, line)
}

// Cmd prepares an *exec.Cmd for the editor and a temp file path.
// It writes the instruction comment followed by content to the temp file.
// replyTo names the author being replied to and may be empty.
func (e *EnvEditor) Cmd(content, replyTo string) (*exec.Cmd, string, error) {
	editorCmd := strings.TrimSpace(os.Getenv("EDITOR"))
	if editorCmd == "" {
		editorCmd = "vi"
	}
	fields := strings.Fields(editorCmd)

	tmpFile, err := os.CreateTemp("", "terminalsky-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(instructions(replyTo) + content); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	args := append(fields[1:], tmpPath)
	return exec.Command(fields[0], args...), tmpPath, nil
}

// ReadContent reads the temp file, strips the instruction comment, trims
// whitespace and removes the file.
func (e *EnvEditor) ReadContent(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}

	content := string(data)
	if idx := strings.Index(content, "-->"); idx != -1 {
		content = content[idx+3:]
	}
	return strings.TrimSpace(content), nil
}
