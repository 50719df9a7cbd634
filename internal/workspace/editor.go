package workspace

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mmr-tortoise/arbor/internal/model"
)

// EditorFunc opens a file for interactive editing and returns when the
// user is done. Tests substitute a function that writes the file directly.
type EditorFunc func(path string) error

// editorCommand returns the user's editor, defaulting to vi.
func editorCommand() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}

// isVimLike reports whether the editor blocks the terminal until the
// user quits. GUI editors (code, subl, ...) may return immediately, so
// non-vim-like editors get an explicit "press enter" gate instead.
func isVimLike(editor string) bool {
	switch filepath.Base(editor) {
	case "vi", "vim", "nvim":
		return true
	default:
		return false
	}
}

// OpenInEditor opens path in the user's $EDITOR and waits for them to
// finish editing.
func OpenInEditor(path string) error {
	editor := editorCommand()

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("editor %q exited with an error", editor), err)
	}

	if !isVimLike(editor) {
		fmt.Fprint(os.Stderr, "Press Enter to continue...")
		reader := bufio.NewReader(os.Stdin)
		_, _ = reader.ReadString('\n')
	}
	return nil
}
