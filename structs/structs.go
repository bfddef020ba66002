package structs

// Position 描述游戏地图上的一个坐标位置。
type Position struct {
	X int `json:"x"` // X坐标
	Y int `json:"y"` // Y坐标
}

// Direction 蛇的移动方向
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Delta 返回沿该方向移动一格的坐标偏移，向上是Y减小（屏幕坐标系）
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite 返回相反方向，用于禁止原地掉头
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return d
}

// Valid 检查方向字符串是否合法
func (d Direction) Valid() bool {
	switch d {
	case DirUp, DirDown, DirLeft, DirRight:
		return true
	}
	return false
}

// SegmentKind 蛇身每一节的类型。角色由标签显式表达，
// 不能靠下标推断，因为胃格会插入到头部后面、尾巴前面等非末尾位置。
type SegmentKind string

const (
	KindHead         SegmentKind = "head"          // 蛇头，永远是body[0]
	KindTail         SegmentKind = "tail"          // 尾巴，最多3节
	KindEmptyStomach SegmentKind = "empty_stomach" // 空胃格
	KindFullStomach  SegmentKind = "full_stomach"  // 满胃格
)

// Segment 蛇身上的一节，带位置和类型
type Segment struct {
	Position Position    `json:"position"`
	Kind     SegmentKind `json:"kind"`
}

// FoodKind 食物类型，三种食物各有不同的结算规则
type FoodKind string

const (
	FoodRustyScrap FoodKind = "rusty_scrap" // 锈铁：加分并增长身体
	FoodShinyMetal FoodKind = "shiny_metal" // 亮铁：填满一个空胃格
	FoodWater      FoodKind = "water"       // 水：消化一个满胃格
)

// AllFoodKinds 按固定顺序列出全部食物类型，补种食物时用
var AllFoodKinds = []FoodKind{FoodRustyScrap, FoodShinyMetal, FoodWater}

// Food 地图上的一个食物
type Food struct {
	Position Position `json:"position"`
	Kind     FoodKind `json:"kind"`
}

// EndReason 游戏结束原因
type EndReason string

const (
	EndBoundaryExit     EndReason = "boundary_exit"     // 撞墙（未开启穿墙时）
	EndSelfCollision    EndReason = "self_collision"    // 咬到自己
	EndStomachOverflow  EndReason = "stomach_overflow"  // 没有空胃格还吃亮铁
	EndStomachUnderflow EndReason = "stomach_underflow" // 身体太短就吃亮铁
)

// StepOutcome 单步模拟的结果。GameOver为false时Reason为空。
type StepOutcome struct {
	GameOver bool      `json:"game_over"`
	Reason   EndReason `json:"reason,omitempty"`
}

// Continue 表示本步正常结束
func Continue() StepOutcome {
	return StepOutcome{}
}

// GameOver 表示本步触发了终局
func GameOver(reason EndReason) StepOutcome {
	return StepOutcome{GameOver: true, Reason: reason}
}

// Phase 会话阶段
type Phase string

const (
	PhaseNotStarted Phase = "not_started" // 等待第一次方向输入
	PhaseRunning    Phase = "running"
	PhaseGameOver   Phase = "game_over"
)

// Snapshot 提供给渲染端的只读状态快照，每帧取一次
type Snapshot struct {
	Segments     []Segment `json:"segments"`
	Foods        []Food    `json:"foods"`
	Score        int       `json:"score"`
	Phase        Phase     `json:"phase"`
	Reason       EndReason `json:"reason,omitempty"`
	EnteringName bool      `json:"entering_name"`
	PlayerName   string    `json:"player_name"`
	FrameCount   uint64    `json:"frame_count"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
}
