package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by CreateScene
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to JSON file (json type only)
}

// DefaultScenesDirs are searched in order for JSON scene files
var DefaultScenesDirs = []string{"scenes", "../scenes"}

// findScenesDir returns the first existing directory from dirs, or ""
func findScenesDir(dirs []string) string {
	for _, path := range dirs {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListJSONScenes scans the scenes directory and returns discovered JSON scenes
func ListJSONScenes(dirs ...string) ([]SceneInfo, error) {
	if len(dirs) == 0 {
		dirs = DefaultScenesDirs
	}
	scenesDir := findScenesDir(dirs)
	if scenesDir == "" {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		scenes = append(scenes, parseJSONMetadata(filePath))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// parseJSONMetadata reads the name and description of a scene file,
// falling back to values derived from the file name
func parseJSONMetadata(filePath string) SceneInfo {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:          nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Type:        "json",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info
	}
	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if json.Unmarshal(data, &meta) != nil {
		return info
	}
	if meta.Name != "" {
		info.DisplayName = meta.Name
	}
	info.Description = meta.Description
	return info
}

// ListAllScenes returns built-in scenes followed by JSON scenes
func ListAllScenes(dirs ...string) ([]SceneInfo, error) {
	all := make([]SceneInfo, 0, len(builtinScenes))
	for _, name := range BuiltinSceneNames() {
		all = append(all, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: builtinScenes[name].description,
			Type:        "builtin",
		})
	}

	jsonScenes, err := ListJSONScenes(dirs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list JSON scenes: %w", err)
	}
	return append(all, jsonScenes...), nil
}

// CreateScene resolves a scene by built-in name, JSON file path,
// or the name of a JSON file in the scenes directory
func CreateScene(name string, dirs ...string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty scene name", ErrUnknownScene)
	}
	if _, ok := builtinScenes[name]; ok {
		return NewBuiltinScene(name)
	}
	if strings.HasSuffix(name, ".json") {
		s, err := LoadJSONScene(name)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrUnknownScene, err)
		}
		return s, err
	}

	if len(dirs) == 0 {
		dirs = DefaultScenesDirs
	}
	if scenesDir := findScenesDir(dirs); scenesDir != "" {
		path := filepath.Join(scenesDir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return LoadJSONScene(path)
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
