package config

import (
	"fmt"

	"github.com/decker502/orrery/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// MovieReferencesPath 电影台词数据文件路径
const MovieReferencesPath = "data/movie_references.yaml"

// MovieReference 太阳过场中展示的一条电影台词
type MovieReference struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`      // 剪影名称（如 "Rocket"）
	Quote     string `yaml:"quote"`     // 台词
	Movie     string `yaml:"movie"`     // 电影名称
	Year      int    `yaml:"year"`      // 上映年份
	MediaPath string `yaml:"mediaPath"` // 剪影图像路径（可缺失，缺失时用占位图形）
	Motion    string `yaml:"motion"`    // 剪影运动方式：spin / drift
}

// MovieReferencesConfig 电影台词数据文件结构
type MovieReferencesConfig struct {
	References []MovieReference `yaml:"references"`
}

// 剪影运动方式
const (
	MotionSpin  = "spin"
	MotionDrift = "drift"
)

// ParseMovieReferences 解析电影台词 YAML
func ParseMovieReferences(data []byte) (*MovieReferencesConfig, error) {
	var cfg MovieReferencesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse movie references: %w", err)
	}
	if err := validateMovieReferences(&cfg); err != nil {
		return nil, fmt.Errorf("invalid movie references: %w", err)
	}
	return &cfg, nil
}

// LoadMovieReferences 从嵌入资源加载电影台词
func LoadMovieReferences(path string) (*MovieReferencesConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read movie references %s: %w", path, err)
	}
	cfg, err := ParseMovieReferences(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultMovieReferences 数据文件不可用时的内置台词
func DefaultMovieReferences() *MovieReferencesConfig {
	return &MovieReferencesConfig{
		References: []MovieReference{
			{ID: "apollo13", Name: "Saturn V", Quote: "Houston, we have a problem.", Movie: "Apollo 13", Year: 1995, Motion: MotionSpin},
			{ID: "toystory", Name: "Space Ranger", Quote: "To infinity and beyond!", Movie: "Toy Story", Year: 1995, Motion: MotionSpin},
		},
	}
}

// validateMovieReferences 检查 ID 非空且唯一、台词非空
func validateMovieReferences(cfg *MovieReferencesConfig) error {
	if len(cfg.References) == 0 {
		return fmt.Errorf("at least one reference is required")
	}
	seen := make(map[string]bool, len(cfg.References))
	for i, ref := range cfg.References {
		if ref.ID == "" {
			return fmt.Errorf("reference #%d: id is required", i)
		}
		if seen[ref.ID] {
			return fmt.Errorf("reference %s: duplicate id", ref.ID)
		}
		seen[ref.ID] = true
		if ref.Quote == "" {
			return fmt.Errorf("reference %s: quote is required", ref.ID)
		}
		if ref.Motion != "" && ref.Motion != MotionSpin && ref.Motion != MotionDrift {
			return fmt.Errorf("reference %s: unknown motion %q", ref.ID, ref.Motion)
		}
	}
	return nil
}

// IDs 返回全部台词 ID（按文件顺序）
func (c *MovieReferencesConfig) IDs() []string {
	ids := make([]string, 0, len(c.References))
	for _, ref := range c.References {
		ids = append(ids, ref.ID)
	}
	return ids
}

// Find 按 ID 查找台词
func (c *MovieReferencesConfig) Find(id string) (MovieReference, bool) {
	for _, ref := range c.References {
		if ref.ID == id {
			return ref, true
		}
	}
	return MovieReference{}, false
}
