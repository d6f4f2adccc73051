package sprite

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// SheetPattern matches sprite files below a sheet root: <category>/NN-<name>.yaml.
const SheetPattern = "*/[0-9][0-9]-*.yaml"

//go:embed sheets
var defaultSheets embed.FS

var (
	ErrNoSprites     = errors.New("sprite: no sprite files found")
	ErrBadSpritePath = errors.New("sprite: bad sprite path (expected <category>/NN-*.yaml)")
	ErrBadSprite     = errors.New("sprite: invalid sprite")
)

// sheetFile is the on-disk form of one sprite.
type sheetFile struct {
	Name   string   `yaml:"name"`
	Color  string   `yaml:"color"`
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Art    []string `yaml:"art"`
}

// Loader loads a sprite table from a sheet directory, or from the built-in
// sheet when Dir is empty.
type Loader struct {
	Dir string
}

// Load implements the asset collaborator used by the session.
func (l Loader) Load() (*Table, error) {
	if l.Dir == "" {
		return Default()
	}
	return LoadFS(os.DirFS(l.Dir))
}

// Default loads the built-in sprite sheet.
func Default() (*Table, error) {
	sub, err := fs.Sub(defaultSheets, "sheets")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS loads every sprite matching SheetPattern in fsys.
// The sprite id is the numeric filename prefix.
func LoadFS(fsys fs.FS) (*Table, error) {
	paths, err := fs.Glob(fsys, SheetPattern)
	if err != nil {
		return nil, fmt.Errorf("sprite: glob failed: %w", err)
	}
	if len(paths) == 0 {
		return nil, ErrNoSprites
	}

	table := NewTable()
	for _, p := range paths {
		s, err := loadFile(fsys, p)
		if err != nil {
			table.Clear()
			return nil, err
		}
		table.Put(s)
	}
	return table, nil
}

func loadFile(fsys fs.FS, p string) (Sprite, error) {
	var s Sprite

	base := path.Base(p)
	var id int
	if _, err := fmt.Sscanf(base, "%d-", &id); err != nil {
		return s, fmt.Errorf("%w: %s", ErrBadSpritePath, p)
	}

	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return s, fmt.Errorf("sprite: failed to read %s: %w", p, err)
	}
	var sf sheetFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return s, fmt.Errorf("sprite: failed to parse %s: %w", p, err)
	}

	color, ok := core.ParseColor(sf.Color)
	if !ok {
		return s, fmt.Errorf("%w: %s: unknown color %q", ErrBadSprite, p, sf.Color)
	}
	if sf.Width <= 0 || sf.Height <= 0 {
		return s, fmt.Errorf("%w: %s: size %dx%d", ErrBadSprite, p, sf.Width, sf.Height)
	}
	if len(sf.Art) == 0 {
		return s, fmt.Errorf("%w: %s: no art", ErrBadSprite, p)
	}

	name := sf.Name
	if name == "" {
		name = strings.TrimSuffix(base[strings.IndexByte(base, '-')+1:], ".yaml")
	}

	return Sprite{
		ID:       id,
		Name:     name,
		Category: path.Dir(p),
		Width:    sf.Width,
		Height:   sf.Height,
		Art:      sf.Art,
		Color:    color,
	}, nil
}
