package session

import (
	"math/rand"

	"github.com/hoshinonyaruko/rusty-snake/leaderboard"
	"github.com/hoshinonyaruko/rusty-snake/snake"
	"github.com/hoshinonyaruko/rusty-snake/structs"
)

// State 会话的可序列化形态，sqlite持久化时整体存取
type State struct {
	Sim          *snake.Simulation `json:"sim"`
	Phase        structs.Phase     `json:"phase"`
	Reason       structs.EndReason `json:"reason,omitempty"`
	EnteringName bool              `json:"entering_name"`
	PlayerName   string            `json:"player_name"`
	Pending      structs.Direction `json:"pending"`
	FrameCount   uint64            `json:"frame_count"`
	StepEvery    uint64            `json:"step_every"`
}

// Export 导出当前会话状态
func (s *Session) Export() State {
	return State{
		Sim:          s.sim,
		Phase:        s.phase,
		Reason:       s.reason,
		EnteringName: s.enteringName,
		PlayerName:   string(s.playerName),
		Pending:      s.pending,
		FrameCount:   s.frameCount,
		StepEvery:    s.stepEvery,
	}
}

// Restore 从持久化状态重建会话。随机源不落盘，恢复时重新注入，
// 排行榜也重新注入，保持依赖都从外面进来。
func Restore(st State, store leaderboard.Store, rng *rand.Rand) *Session {
	st.Sim.AttachPlacer(rng)
	stepEvery := st.StepEvery
	if stepEvery == 0 {
		stepEvery = DefaultStepEvery
	}
	return &Session{
		sim:          st.Sim,
		phase:        st.Phase,
		reason:       st.Reason,
		enteringName: st.EnteringName,
		playerName:   []rune(st.PlayerName),
		pending:      st.Pending,
		frameCount:   st.FrameCount,
		stepEvery:    stepEvery,
		store:        store,
		rng:          rng,
	}
}
