// 会话层：在模拟器外面包一层阶段机，处理输入事件和重新开始
package session

import (
	"math/rand"
	"unicode"

	"github.com/hoshinonyaruko/rusty-snake/leaderboard"
	"github.com/hoshinonyaruko/rusty-snake/snake"
	"github.com/hoshinonyaruko/rusty-snake/structs"
)

// MaxNameLength 上榜名字的最大长度
const MaxNameLength = 10

// DefaultStepEvery 每多少帧推进一步模拟，对应原版的蛇速
const DefaultStepEvery = 15

// Session 一局游戏的完整状态。阶段流转：
// NotStarted -> Running（第一次方向输入）-> GameOver -> NotStarted（重新开始）。
// 重新开始是整体换一套新状态，不做原地部分重置。
type Session struct {
	sim          *snake.Simulation
	phase        structs.Phase
	reason       structs.EndReason
	enteringName bool
	playerName   []rune
	pending      structs.Direction
	frameCount   uint64
	stepEvery    uint64

	store leaderboard.Store
	rng   *rand.Rand
}

// New 创建一个新会话。排行榜通过参数注入，不走全局状态。
func New(width, height int, wrapAround bool, stepEvery uint64, store leaderboard.Store, rng *rand.Rand) *Session {
	if stepEvery == 0 {
		stepEvery = DefaultStepEvery
	}
	return &Session{
		sim:       snake.NewSimulation(width, height, wrapAround, rng),
		phase:     structs.PhaseNotStarted,
		pending:   structs.DirRight,
		stepEvery: stepEvery,
		store:     store,
		rng:       rng,
	}
}

// Phase 当前阶段
func (s *Session) Phase() structs.Phase {
	return s.phase
}

// EnteringName 是否正在录入上榜名字
func (s *Session) EnteringName() bool {
	return s.enteringName
}

// Score 当前分数
func (s *Session) Score() int {
	return s.sim.Score
}

// OnDirection 处理方向键。未开始时第一次按方向键开局并播种食物；
// 运行中只更新待生效方向，且不允许和当前行进方向正好相反，
// 防止一帧之内原地掉头咬到自己。
func (s *Session) OnDirection(d structs.Direction) error {
	if !d.Valid() {
		return nil
	}
	switch s.phase {
	case structs.PhaseNotStarted:
		s.sim.Direction = d
		s.pending = d
		s.phase = structs.PhaseRunning
		return s.sim.SeedFoods()
	case structs.PhaseRunning:
		// 以上一步实际使用的方向为准做掉头检查，不能用pending，
		// 否则快速连按两次就能绕过限制
		if d != s.sim.Direction.Opposite() {
			s.pending = d
		}
	}
	return nil
}

// Tick 表示渲染时钟走了一帧。只有运行中的会话每stepEvery帧推进一步，
// 多一步少一步都不行。返回的error是食物无处可放的配置级错误。
func (s *Session) Tick() error {
	s.frameCount++
	if s.phase != structs.PhaseRunning {
		return nil
	}
	if s.frameCount%s.stepEvery != 0 {
		return nil
	}

	s.sim.Direction = s.pending
	outcome, err := s.sim.Step()
	if err != nil {
		return err
	}
	if outcome.GameOver {
		s.phase = structs.PhaseGameOver
		s.reason = outcome.Reason
		// 进终局时问一次排行榜，够格才进入名字录入
		s.enteringName = s.store != nil && s.store.IsQualifying(s.sim.Score)
		s.playerName = s.playerName[:0]
	}
	return nil
}

// Advance 一次性推进若干帧，HTTP侧按流逝的墙钟时间折算帧数后调用
func (s *Session) Advance(frames uint64) error {
	for i := uint64(0); i < frames; i++ {
		if err := s.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// AdvanceSteps 推进n个完整的模拟步，每步等于stepEvery帧
func (s *Session) AdvanceSteps(n uint64) error {
	return s.Advance(n * s.stepEvery)
}

// OnCharacter 名字录入时追加一个可打印字符，超长丢弃
func (s *Session) OnCharacter(c rune) {
	if s.phase != structs.PhaseGameOver || !s.enteringName {
		return
	}
	if !unicode.IsPrint(c) {
		return
	}
	if len(s.playerName) < MaxNameLength {
		s.playerName = append(s.playerName, c)
	}
}

// OnBackspace 名字录入时删掉最后一个字符
func (s *Session) OnBackspace() {
	if s.phase != structs.PhaseGameOver || !s.enteringName {
		return
	}
	if len(s.playerName) > 0 {
		s.playerName = s.playerName[:len(s.playerName)-1]
	}
}

// OnConfirm 处理回车。录入名字时：名字非空才提交上榜并结束录入；
// 终局画面（没在录名字）时：重新开始一局。
func (s *Session) OnConfirm() error {
	if s.phase != structs.PhaseGameOver {
		return nil
	}
	if s.enteringName {
		if len(s.playerName) == 0 {
			return nil
		}
		s.enteringName = false
		if s.store != nil {
			return s.store.Record(string(s.playerName), s.sim.Score)
		}
		return nil
	}
	s.restart()
	return nil
}

// restart 整体替换会话状态，回到未开始阶段
func (s *Session) restart() {
	s.sim = snake.NewSimulation(s.sim.Width, s.sim.Height, s.sim.WrapAround, s.rng)
	s.phase = structs.PhaseNotStarted
	s.reason = ""
	s.enteringName = false
	s.playerName = s.playerName[:0]
	s.pending = structs.DirRight
	s.frameCount = 0
}

// Snapshot 给渲染端的只读快照，蛇身和食物都是副本
func (s *Session) Snapshot() structs.Snapshot {
	segments := make([]structs.Segment, len(s.sim.Body))
	copy(segments, s.sim.Body)
	foods := make([]structs.Food, len(s.sim.Foods))
	copy(foods, s.sim.Foods)

	return structs.Snapshot{
		Segments:     segments,
		Foods:        foods,
		Score:        s.sim.Score,
		Phase:        s.phase,
		Reason:       s.reason,
		EnteringName: s.enteringName,
		PlayerName:   string(s.playerName),
		FrameCount:   s.frameCount,
		Width:        s.sim.Width,
		Height:       s.sim.Height,
	}
}
