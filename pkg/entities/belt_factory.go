package entities

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/utils"
)

// beltSpinMax 粒子自转速度上限（弧度/模拟日）
const beltSpinMax = 0.2

// NewBeltEntities 用固定种子生成小行星带 / 柯伊伯带粒子
//
// 半径在 [Inner, Outer] 均匀分布，角速度 = BaseSpeed / sqrt(r / ReferenceRadius)。
// 相同配置总是生成相同的粒子。
func NewBeltEntities(em *ecs.EntityManager, belt config.BeltConfig, kind components.BodyKind) ([]ecs.EntityID, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if belt.Count == 0 {
		return nil, nil
	}
	if belt.ReferenceRadius <= 0 || belt.InnerRadius <= 0 || belt.OuterRadius < belt.InnerRadius {
		return nil, fmt.Errorf("belt %s: invalid radius parameters", belt.Name)
	}
	col, err := config.ParseHexColor(belt.Color)
	if err != nil {
		return nil, fmt.Errorf("belt %s: %w", belt.Name, err)
	}

	rng := rand.New(rand.NewSource(belt.Seed))
	ids := make([]ecs.EntityID, 0, belt.Count)

	for i := 0; i < belt.Count; i++ {
		radius := belt.InnerRadius + rng.Float64()*(belt.OuterRadius-belt.InnerRadius)
		particle := &components.BeltParticleComponent{
			Radius:     radius,
			StartAngle: rng.Float64() * 2 * math.Pi,
			Height:     (rng.Float64()*2 - 1) * belt.HalfHeight,
			Speed:      belt.BaseSpeed / math.Sqrt(radius/belt.ReferenceRadius),
			SpinSpeed:  rng.Float64() * beltSpinMax,
			Size:       belt.MinSize + rng.Float64()*(belt.MaxSize-belt.MinSize),
		}

		id := em.CreateEntity()
		ecs.AddComponent(em, id, particle)
		ecs.AddComponent(em, id, &components.TransformComponent{
			Position: utils.BeltPositionAt(particle.Radius, particle.StartAngle, particle.Height, particle.Speed, 0),
		})
		ecs.AddComponent(em, id, &components.BodyInfoComponent{
			Name:        belt.Name,
			Description: belt.Description,
			Kind:        kind,
			Radius:      particle.Size,
			Color:       col,
		})
		ids = append(ids, id)
	}
	return ids, nil
}

// NewStarfield 在球壳内生成静止的背景星
// 大部分偏蓝白，少量偏黄
func NewStarfield(em *ecs.EntityManager, stars config.StarfieldConfig) ([]ecs.EntityID, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if stars.Count <= 0 {
		return nil, nil
	}

	rng := rand.New(rand.NewSource(stars.Seed))
	ids := make([]ecs.EntityID, 0, stars.Count)

	for i := 0; i < stars.Count; i++ {
		radius := stars.InnerRadius + rng.Float64()*(stars.OuterRadius-stars.InnerRadius)
		// 球面均匀分布
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		pos := utils.NewVec3(
			radius*math.Sin(phi)*math.Cos(theta),
			radius*math.Sin(phi)*math.Sin(theta),
			radius*math.Cos(phi),
		)

		dim := 0.4 + rng.Float64()*0.6
		var col color.RGBA
		if rng.Float64() < 0.85 {
			col = color.RGBA{R: uint8(dim * 0.8 * 255), G: uint8(dim * 0.9 * 255), B: uint8(dim * 255), A: 0xff}
		} else {
			col = color.RGBA{R: uint8(dim * 255), G: uint8(dim * 255), B: uint8(dim * 0.6 * 255), A: 0xff}
		}

		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.TransformComponent{Position: pos})
		ecs.AddComponent(em, id, &components.BodyInfoComponent{
			Kind:   components.BodyStar,
			Radius: 0.5 + rng.Float64(),
			Color:  col,
		})
		ids = append(ids, id)
	}
	return ids, nil
}
