package api

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/gin-gonic/gin"
	"github.com/hoshinonyaruko/rusty-snake/config"
	"github.com/hoshinonyaruko/rusty-snake/leaderboard"
	"github.com/hoshinonyaruko/rusty-snake/memimg"
	"github.com/hoshinonyaruko/rusty-snake/session"
	"github.com/hoshinonyaruko/rusty-snake/sqlite"
	"github.com/hoshinonyaruko/rusty-snake/structs"
	_ "github.com/mattn/go-sqlite3"
)

// 全局缓存：画好的底图（背景+网格）按尺寸复用
var backgroundCache sync.Map

func InitDB() *sql.DB {
	db, err := sql.Open("sqlite3", "game.db")
	if err != nil {
		log.Fatal(err)
	}

	sqlite.InitializeDatabase(db)

	return db
}

// getOrCreateSession 按GroupID取回会话，没有就按当前配置新建一局
func getOrCreateSession(db *sql.DB, store leaderboard.Store, groupID string) (*session.Session, int64, error) {
	state, lastRefresh, err := sqlite.LoadSession(db, groupID)
	if err == sql.ErrNoRows {
		cfg := config.Get()
		sess := session.New(cfg.Width, cfg.Height, cfg.WrapAround, uint64(cfg.StepEvery), store, nil)
		return sess, time.Now().Unix(), nil
	}
	if err != nil {
		return nil, 0, err
	}
	return session.Restore(state, store, nil), lastRefresh, nil
}

// advanceSession 按流逝的墙钟时间折算出该走的步数并推进会话。
// 每RefreshInterval秒对应一步模拟，也就是StepEvery帧，不多走也不少走。
// 返回新的LastRefresh；没到时间就原样返回。
func advanceSession(sess *session.Session, lastRefresh int64) (int64, error) {
	cfg := config.Get()
	now := time.Now().Unix()
	interval := int64(cfg.RefreshInterval)
	if interval <= 0 {
		interval = 1
	}
	stepCount := (now - lastRefresh) / interval
	if stepCount <= 0 {
		return lastRefresh, nil
	}
	if err := sess.AdvanceSteps(uint64(stepCount)); err != nil {
		return lastRefresh, err
	}
	return now, nil
}

// saveSession 把会话落库，失败只记日志，不影响本次响应
func saveSession(db *sql.DB, groupID string, sess *session.Session, lastRefresh int64) {
	if err := sqlite.SaveSession(db, groupID, sess.Export(), lastRefresh); err != nil {
		log.Printf("Failed to persist session %s: %v", groupID, err)
	}
}

// InputDirectionHandler 处理玩家按方向键
func InputDirectionHandler(db *sql.DB, store leaderboard.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		direction := structs.Direction(c.Query("direction"))

		// 验证是否提供了必要的查询参数
		if groupID == "" || direction == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameters: groupid or direction"})
			return
		}
		if !direction.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid direction '%s' provided", direction)})
			return
		}

		sess, lastRefresh, err := getOrCreateSession(db, store, groupID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch or create session"})
			return
		}

		// 先把欠的tick补上，再应用输入
		lastRefresh, err = advanceSession(sess, lastRefresh)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := sess.OnDirection(direction); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		saveSession(db, groupID, sess, lastRefresh)
		c.JSON(http.StatusOK, gin.H{"message": "Direction updated successfully", "phase": sess.Phase()})
	}
}

// InputKeyHandler 处理终局画面的按键：confirm回车、backspace退格、char输入字符
func InputKeyHandler(db *sql.DB, store leaderboard.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		key := c.Query("key")

		if groupID == "" || key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameters: groupid or key"})
			return
		}

		sess, lastRefresh, err := getOrCreateSession(db, store, groupID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch or create session"})
			return
		}
		lastRefresh, err = advanceSession(sess, lastRefresh)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		switch key {
		case "confirm":
			if err := sess.OnConfirm(); err != nil {
				// 排行榜写失败不拦着玩家，记日志继续
				log.Printf("Failed to record high score: %v", err)
			}
		case "backspace":
			sess.OnBackspace()
		case "char":
			chars := []rune(c.Query("char"))
			if len(chars) != 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "char key requires exactly one character"})
				return
			}
			sess.OnCharacter(chars[0])
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid key '%s' provided", key)})
			return
		}

		saveSession(db, groupID, sess, lastRefresh)
		c.JSON(http.StatusOK, sess.Snapshot())
	}
}

// StateHandler 返回渲染端需要的完整快照
func StateHandler(db *sql.DB, store leaderboard.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		if groupID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: groupid"})
			return
		}

		sess, lastRefresh, err := getOrCreateSession(db, store, groupID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch or create session"})
			return
		}
		lastRefresh, err = advanceSession(sess, lastRefresh)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		saveSession(db, groupID, sess, lastRefresh)
		c.JSON(http.StatusOK, sess.Snapshot())
	}
}

// LeaderboardHandler 返回当前榜单
func LeaderboardHandler(store leaderboard.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"entries": store.TopN()})
	}
}

// RenderMapHandler 推进会话并把地图画成图片，返回静态地址
func RenderMapHandler(db *sql.DB, store leaderboard.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		if groupID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: groupid"})
			return
		}

		sess, lastRefresh, err := getOrCreateSession(db, store, groupID)
		if err != nil {
			fmt.Printf("err getOrCreateSession :%v\n", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch or create session"})
			return
		}

		// 贪食蛇刷新
		lastRefresh, err = advanceSession(sess, lastRefresh)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// 绘图
		if err := renderImageAndSave(sess.Snapshot(), groupID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to render map"})
			return
		}

		imageUrl := fmt.Sprintf("http://%s/static/%s.png", config.GetConfigValue("selfpath").(string), groupID)
		c.JSON(http.StatusOK, gin.H{"image_url": imageUrl, "score": sess.Score(), "phase": sess.Phase()})

		// 持久化
		saveSession(db, groupID, sess, lastRefresh)
	}
}

// DeleteMapHandler 删掉一个群的会话
func DeleteMapHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		if groupID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: groupid"})
			return
		}
		if err := sqlite.DeleteSession(db, groupID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
	}
}

// 各类型格子的纯色兜底配色和尺寸，贴图缺失时使用，取自最初的配色表
type cellStyle struct {
	r, g, b float64
	size    float64 // 相对于整格的边长比例，小格子居中画
}

var segmentStyles = map[structs.SegmentKind]cellStyle{
	structs.KindHead:         {0.0, 0.7, 0.0, 1.0},
	structs.KindFullStomach:  {0.0, 1.0, 0.0, 1.0},
	structs.KindEmptyStomach: {0.0, 0.8, 0.0, 0.8},
	structs.KindTail:         {0.0, 0.5, 0.0, 0.6},
}

var foodStyles = map[structs.FoodKind]cellStyle{
	structs.FoodRustyScrap: {0.6, 0.4, 0.2, 1.0},
	structs.FoodShinyMetal: {0.8, 0.8, 0.8, 1.0},
	structs.FoodWater:      {0.0, 0.0, 1.0, 1.0},
}

// renderImageAndSave 渲染地图并保存为图片
func renderImageAndSave(snap structs.Snapshot, groupID string) error {
	blockSize := config.GetConfigValue("blocksize").(int)
	canvasWidth := snap.Width * blockSize
	canvasHeight := snap.Height * blockSize

	// 底图（背景+网格）按尺寸缓存，命中就不用重画
	cacheKey := fmt.Sprintf("%d_%d_%d", snap.Width, snap.Height, blockSize)
	var base *gg.Context
	if cached, ok := backgroundCache.Load(cacheKey); ok {
		base = cached.(*gg.Context)
	} else {
		base = gg.NewContext(canvasWidth, canvasHeight)
		base.SetRGB(0.5, 0.5, 0.5)
		base.Clear()
		renderGrid(base, canvasWidth, canvasHeight, blockSize)
		backgroundCache.Store(cacheKey, base)
	}

	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.DrawImage(base.Image(), 0, 0)

	// 先画食物再画蛇，蛇头踩到食物格时以蛇为准
	for _, food := range snap.Foods {
		drawCell(dc, food.Position, string(food.Kind), foodStyles[food.Kind], blockSize)
	}
	for _, seg := range snap.Segments {
		drawCell(dc, seg.Position, string(seg.Kind), segmentStyles[seg.Kind], blockSize)
	}

	// 保存图片
	fileName := fmt.Sprintf("./static/%s.png", groupID)
	os.MkdirAll(filepath.Dir(fileName), os.ModePerm)
	return dc.SavePNG(fileName)
}

// drawCell 画一个格子：有贴图用贴图，没有就画按比例缩小居中的纯色方块
func drawCell(dc *gg.Context, pos structs.Position, spriteName string, style cellStyle, blockSize int) {
	if img, found := memimg.GetSpriteFromMemory(spriteName); found {
		dc.DrawImage(img, pos.X*blockSize, pos.Y*blockSize)
		return
	}
	size := float64(blockSize) * style.size
	offset := (float64(blockSize) - size) / 2
	dc.SetRGB(style.r, style.g, style.b)
	dc.DrawRectangle(float64(pos.X*blockSize)+offset, float64(pos.Y*blockSize)+offset, size, size)
	dc.Fill()
}

func renderGrid(dc *gg.Context, width, height, blockSize int) {
	dc.SetRGB(0.9, 0.9, 0.9)
	for x := 0; x <= width; x += blockSize {
		dc.DrawLine(float64(x), 0, float64(x), float64(height))
		dc.Stroke()
	}
	for y := 0; y <= height; y += blockSize {
		dc.DrawLine(0, float64(y), float64(width), float64(y))
		dc.Stroke()
	}
}
