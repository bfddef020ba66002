// 关于蛇身体的操作
package snake

import (
	"github.com/hoshinonyaruko/rusty-snake/structs"
)

// MaxTailLength 尾巴节数上限，超过后锈铁改为增加胃格
const MaxTailLength = 3

// NewBody 创建一条只有蛇头的新蛇
func NewBody(headPos structs.Position) []structs.Segment {
	return []structs.Segment{
		{Position: headPos, Kind: structs.KindHead},
	}
}

// ShiftBody 身体整体前移：每一节移动到前一节原来的位置，蛇头移动到newHead。
// 长度不变，节的类型跟着节走，不跟着位置走。移动后重申body[0]是蛇头。
func ShiftBody(body []structs.Segment, newHead structs.Position) {
	for i := len(body) - 1; i > 0; i-- {
		body[i].Position = body[i-1].Position
	}
	body[0].Position = newHead
	body[0].Kind = structs.KindHead
}

// TailCount 统计尾巴节数
func TailCount(body []structs.Segment) int {
	count := 0
	for _, seg := range body {
		if seg.Kind == structs.KindTail {
			count++
		}
	}
	return count
}

// FirstIndexOfKind 返回从头到尾第一个指定类型的下标，找不到返回-1
func FirstIndexOfKind(body []structs.Segment, kind structs.SegmentKind) int {
	for i, seg := range body {
		if seg.Kind == kind {
			return i
		}
	}
	return -1
}

// InsertSegment 在index处插入一节，后面的节整体后移
func InsertSegment(body []structs.Segment, index int, seg structs.Segment) []structs.Segment {
	body = append(body, structs.Segment{})
	copy(body[index+1:], body[index:])
	body[index] = seg
	return body
}

// AppendTail 在身体末尾追加一节尾巴，位置与当前最后一节重合
func AppendTail(body []structs.Segment) []structs.Segment {
	last := body[len(body)-1].Position
	return append(body, structs.Segment{Position: last, Kind: structs.KindTail})
}

// OccupiedPositions 收集蛇身和食物占据的全部格子
func OccupiedPositions(body []structs.Segment, foods []structs.Food) map[structs.Position]bool {
	occupied := make(map[structs.Position]bool, len(body)+len(foods))
	for _, seg := range body {
		occupied[seg.Position] = true
	}
	for _, food := range foods {
		occupied[food.Position] = true
	}
	return occupied
}

// BodyContains 检查某个格子是否被蛇身占据
func BodyContains(body []structs.Segment, pos structs.Position) bool {
	for _, seg := range body {
		if seg.Position == pos {
			return true
		}
	}
	return false
}

// WrapCoordinate 数学取模，负数也能正确绕回，保证结果落在[0, size)
func WrapCoordinate(v, size int) int {
	return ((v % size) + size) % size
}

// WrapPosition 确保位置不会超出地图边界
func WrapPosition(x, y, width, height int) (int, int) {
	return WrapCoordinate(x, width), WrapCoordinate(y, height)
}
