package snake

import (
	"errors"
	"math/rand"
	"time"

	"github.com/hoshinonyaruko/rusty-snake/structs"
)

// ErrGridFull 地图上没有空格子可以放食物了，说明地图相对蛇的长度太小，
// 属于配置级错误，和游戏内的终局原因区分开
var ErrGridFull = errors.New("snake: no free cell left on the grid")

// 随机尝试的次数上限，超过后退化为顺序扫描而不是无限重试
const maxPlaceAttempts = 1000

// Placer 负责为食物找一个不与蛇身和其他食物重叠的随机位置。
// 随机源可注入，测试时传入固定种子即可复现。
type Placer struct {
	Width  int
	Height int
	rng    *rand.Rand
}

// NewPlacer 创建食物放置器，rng为nil时用当前时间做种子
func NewPlacer(width, height int, rng *rand.Rand) *Placer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Placer{Width: width, Height: height, rng: rng}
}

// Place 为指定类型的食物生成一个不在occupied里的随机位置。
// 先随机尝试，尝试次数用尽后从随机起点顺序扫描整张地图，
// 真的一个空格都没有才返回ErrGridFull，绝不会无限循环。
func (p *Placer) Place(kind structs.FoodKind, occupied map[structs.Position]bool) (structs.Food, error) {
	for i := 0; i < maxPlaceAttempts; i++ {
		pos := structs.Position{
			X: p.rng.Intn(p.Width),
			Y: p.rng.Intn(p.Height),
		}
		if !occupied[pos] {
			return structs.Food{Position: pos, Kind: kind}, nil
		}
	}

	// 随机撞运气失败，顺序找第一个空格
	total := p.Width * p.Height
	start := p.rng.Intn(total)
	for i := 0; i < total; i++ {
		idx := (start + i) % total
		pos := structs.Position{X: idx % p.Width, Y: idx / p.Width}
		if !occupied[pos] {
			return structs.Food{Position: pos, Kind: kind}, nil
		}
	}

	return structs.Food{}, ErrGridFull
}
