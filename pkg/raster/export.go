package raster

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is an image file format.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
)

// ParseFormat accepts "png", "jpeg"/"jpg" and "gif", case-insensitively,
// with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(filename string) (Format, error) {
	return ParseFormat(filepath.Ext(filename))
}

// ExportOptions controls image encoding.
type ExportOptions struct {
	Format Format

	// Quality for JPEG (1-100)
	Quality int

	// Compression for PNG
	Compression png.CompressionLevel
}

// DefaultExportOptions returns PNG with default compression.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:      PNG,
		Quality:     90,
		Compression: png.DefaultCompression,
	}
}

// Encode writes img to w in the configured format.
func Encode(w io.Writer, img image.Image, opts ExportOptions) error {
	switch opts.Format {
	case PNG, "":
		enc := png.Encoder{CompressionLevel: opts.Compression}
		return enc.Encode(w, img)
	case JPEG:
		q := opts.Quality
		if q < 1 {
			q = 1
		}
		if q > 100 {
			q = 100
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case GIF:
		return gif.Encode(w, img, &gif.Options{NumColors: 256})
	}
	return fmt.Errorf("unsupported image format %q", opts.Format)
}

// Save encodes img into filename. An empty opts.Format is taken from the
// file extension.
func Save(filename string, img image.Image, opts ExportOptions) error {
	if opts.Format == "" {
		f, err := FormatFromPath(filename)
		if err != nil {
			return err
		}
		opts.Format = f
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(f, img, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", opts.Format, err)
	}
	return f.Close()
}

// Save writes the canvas image to filename.
func (c *Canvas) Save(filename string, opts ExportOptions) error {
	return Save(filename, c.img, opts)
}
