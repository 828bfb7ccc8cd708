// Package ocr wraps the tesseract binary behind a narrow image-in/text-out
// contract so the visual structurer stays testable without an OCR install.
package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"
)

// Config selects a tesseract tuning per region type.
type Config struct {
	OEM       int
	PSM       int
	Whitelist string // restricts recognized characters when non-empty
}

// TextConfig is the unrestricted tuning used for plain images.
func TextConfig() Config {
	return Config{OEM: 3, PSM: 6}
}

// GraphConfig restricts the character set to what axis labels and legends
// are made of.
func GraphConfig() Config {
	return Config{
		OEM:       3,
		PSM:       6,
		Whitelist: "0123456789.%-abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
	}
}

// Engine extracts text from an image.
type Engine interface {
	Recognize(img image.Image, cfg Config) (string, error)
}

// Tesseract shells out to the tesseract binary on PATH.
type Tesseract struct{}

func (Tesseract) Recognize(img image.Image, cfg Config) (string, error) {
	tmp, err := os.CreateTemp("", "documind-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encode image: %w", err)
	}
	tmp.Close()

	args := []string{tmpPath, "stdout", "--oem", fmt.Sprint(cfg.OEM), "--psm", fmt.Sprint(cfg.PSM)}
	if cfg.Whitelist != "" {
		args = append(args, "-c", "tessedit_char_whitelist="+cfg.Whitelist)
	}

	out, err := exec.Command("tesseract", args...).Output()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
