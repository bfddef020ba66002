// 关于蛇的更新：每个tick推进一步的状态机
package snake

import (
	"math/rand"

	"github.com/hoshinonyaruko/rusty-snake/structs"
)

const (
	scoreRustyScrap = 1 // 吃锈铁得分
	scoreShinyMetal = 2 // 亮铁入胃得分
	scoreWater      = 5 // 水消化得分

	// 身体长度低于这个值（蛇头+3节尾巴+至少1个胃格）时吃亮铁直接终局
	minLenForShinyMetal = 5

	// 每次喝水消化后，在尾巴前补的空胃格数量
	waterGrowth = 5
)

// Simulation 单条蛇的模拟器，持有蛇身、在场食物、分数和方向。
// 整个状态只被Step和方向输入修改，不跨协程共享。
type Simulation struct {
	Width      int               `json:"width"`
	Height     int               `json:"height"`
	WrapAround bool              `json:"wrap_around"`
	Body       []structs.Segment `json:"body"`
	Foods      []structs.Food    `json:"foods"`
	Score      int               `json:"score"`
	Direction  structs.Direction `json:"direction"`

	placer *Placer
}

// NewSimulation 创建一局新模拟：蛇头在地图中央，默认向右。
// rng可注入，测试时传固定种子保证可复现。
func NewSimulation(width, height int, wrapAround bool, rng *rand.Rand) *Simulation {
	return &Simulation{
		Width:      width,
		Height:     height,
		WrapAround: wrapAround,
		Body:       NewBody(structs.Position{X: width / 2, Y: height / 2}),
		Direction:  structs.DirRight,
		placer:     NewPlacer(width, height, rng),
	}
}

// AttachPlacer 重建放置器，从sqlite恢复会话后调用
func (s *Simulation) AttachPlacer(rng *rand.Rand) {
	s.placer = NewPlacer(s.Width, s.Height, rng)
}

// SeedFoods 三种食物各放一个，开局和重新开始时调用
func (s *Simulation) SeedFoods() error {
	s.Foods = s.Foods[:0]
	for _, kind := range structs.AllFoodKinds {
		food, err := s.placer.Place(kind, OccupiedPositions(s.Body, s.Foods))
		if err != nil {
			return err
		}
		s.Foods = append(s.Foods, food)
	}
	return nil
}

// Step 推进一个tick。按固定顺序执行：补食物、算新蛇头、处理边界、
// 检查自撞、吃食物并立刻补一个同类食物、身体前移、结算食物效果。
// 边界和自撞要在食物结算之前判掉，保证食物效果不会作用在一条
// 即将作废的蛇身上；食物在身体前移之前补种，新食物不会落在
// 这个tick里即将空出来的格子上。
// error只在食物无处可放时返回（配置级错误），和游戏内终局区分开。
func (s *Simulation) Step() (structs.StepOutcome, error) {
	// 场上没有食物时先补齐
	if len(s.Foods) == 0 {
		if err := s.SeedFoods(); err != nil {
			return structs.Continue(), err
		}
	}

	// 根据方向计算新头部位置
	head := s.Body[0].Position
	dx, dy := s.Direction.Delta()
	newX, newY := head.X+dx, head.Y+dy

	// 处理新位置可能超出边界的情况
	if s.WrapAround {
		newX, newY = WrapPosition(newX, newY, s.Width, s.Height)
	} else if newX < 0 || newX >= s.Width || newY < 0 || newY >= s.Height {
		return structs.GameOver(structs.EndBoundaryExit), nil
	}
	newHead := structs.Position{X: newX, Y: newY}

	// 咬到自己直接终局，本tick不再有任何改动
	if BodyContains(s.Body, newHead) {
		return structs.GameOver(structs.EndSelfCollision), nil
	}

	// 检查新头部位置上有没有食物，吃到就立刻原类型补一个新的
	ate := false
	var ateKind structs.FoodKind
	for i := range s.Foods {
		if s.Foods[i].Position == newHead {
			ate = true
			ateKind = s.Foods[i].Kind
			food, err := s.placer.Place(ateKind, OccupiedPositions(s.Body, s.Foods))
			if err != nil {
				return structs.Continue(), err
			}
			s.Foods[i] = food
			break
		}
	}

	// 身体前移。head保留了移动前蛇头的位置，锈铁插胃格时要用
	ShiftBody(s.Body, newHead)

	// 结算食物效果
	if ate {
		return s.resolveFood(ateKind, head), nil
	}
	return structs.Continue(), nil
}

// resolveFood 按食物类型结算，只在本tick确实吃到了食物时调用
func (s *Simulation) resolveFood(kind structs.FoodKind, prevHeadPos structs.Position) structs.StepOutcome {
	switch kind {
	case structs.FoodRustyScrap:
		s.Score += scoreRustyScrap
		if TailCount(s.Body) < MaxTailLength {
			// 尾巴还没长满，末尾加一节尾巴
			s.Body = AppendTail(s.Body)
		} else {
			// 尾巴已满，在蛇头后面插一个空胃格，位置用移动前蛇头的格子
			s.Body = InsertSegment(s.Body, 1, structs.Segment{
				Position: prevHeadPos,
				Kind:     structs.KindEmptyStomach,
			})
		}

	case structs.FoodShinyMetal:
		// 身体太短说明还没有任何胃格，吃亮铁是致命的
		if len(s.Body) < minLenForShinyMetal {
			return structs.GameOver(structs.EndStomachUnderflow)
		}
		idx := FirstIndexOfKind(s.Body, structs.KindEmptyStomach)
		if idx < 0 {
			// 没有空胃格了，撑爆
			return structs.GameOver(structs.EndStomachOverflow)
		}
		s.Body[idx].Kind = structs.KindFullStomach
		s.Score += scoreShinyMetal

	case structs.FoodWater:
		idx := FirstIndexOfKind(s.Body, structs.KindFullStomach)
		if idx < 0 {
			// 没有存货，喝水无事发生。这是刻意保留的行为，不是漏网的bug
			return structs.Continue()
		}
		s.Body[idx].Kind = structs.KindEmptyStomach
		s.Score += scoreWater
		// 在第一节尾巴前面补waterGrowth个空胃格，位置与那节尾巴重合
		tailIdx := FirstIndexOfKind(s.Body, structs.KindTail)
		if tailIdx < 0 {
			tailIdx = len(s.Body)
		}
		var growPos structs.Position
		if tailIdx < len(s.Body) {
			growPos = s.Body[tailIdx].Position
		} else {
			growPos = s.Body[len(s.Body)-1].Position
		}
		for i := 0; i < waterGrowth; i++ {
			s.Body = InsertSegment(s.Body, tailIdx, structs.Segment{
				Position: growPos,
				Kind:     structs.KindEmptyStomach,
			})
		}
	}

	return structs.Continue()
}
