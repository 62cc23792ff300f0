package gui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// iconImages holds the decoded icon set shared by all windows.
var iconImages []image.Image

// SetWindowIcon loads PNG files to use as the icon for every window
// opened afterwards. Provide multiple sizes (16, 32, 48) and the
// platform picks the closest. Calling it with no paths clears the
// icon. Call before opening windows; already-open windows keep their
// icon.
func SetWindowIcon(paths ...string) error {
	if len(paths) == 0 {
		registryMu.Lock()
		iconImages = nil
		registryMu.Unlock()
		return nil
	}
	imgs := make([]image.Image, 0, len(paths))
	for _, p := range paths {
		img, err := loadIconImage(p)
		if err != nil {
			return err
		}
		imgs = append(imgs, img)
	}
	registryMu.Lock()
	iconImages = imgs
	registryMu.Unlock()
	return nil
}

func loadIconImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gui: open icon: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("gui: decode icon %s: %w", path, err)
	}
	return img, nil
}

// applyWindowIcon sets the configured icon on a freshly created native
// window. macOS ignores per-window icons (the dock icon comes from the
// app bundle) and Wayland has no window icon protocol, so both are
// skipped.
func applyWindowIcon(handle *glfw.Window) {
	if runtime.GOOS == "darwin" {
		return
	}
	registryMu.Lock()
	imgs := iconImages
	registryMu.Unlock()
	if len(imgs) == 0 {
		return
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		guiLogger.Debug("window icons unsupported on wayland, skipping")
		return
	}
	handle.SetIcon(imgs)
}
