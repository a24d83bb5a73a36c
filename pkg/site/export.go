package site

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Export writes the combined document plus the individual source files into
// dir, creating it if necessary. It returns the path of the combined
// index.html.
func Export(dir, title string, code Code) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	indexPath := filepath.Join(dir, "index.html")
	if err := os.WriteFile(indexPath, []byte(BuildDocument(title, code)), 0644); err != nil {
		return "", fmt.Errorf("failed to write index.html: %w", err)
	}

	sources := map[string]string{
		"site.html": code.HTML,
		"style.css": code.CSS,
		"script.js": code.JS,
	}
	for name, content := range sources {
		if content == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	return indexPath, nil
}

// Open launches the OS default browser on the given path.
func Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
