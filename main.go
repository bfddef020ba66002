package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hoshinonyaruko/rusty-snake/api"
	"github.com/hoshinonyaruko/rusty-snake/config"
	"github.com/hoshinonyaruko/rusty-snake/leaderboard"
	"github.com/hoshinonyaruko/rusty-snake/memimg"
)

func main() {
	EnsureFoldersExist()
	// Initialize the configuration
	config.LoadConfig("./config.json")
	cfg := config.Get()
	// 载入贴图到内存
	memimg.LoadSprites(cfg.SpritesDir, cfg.Blocksize)
	// 检测并热更新到内存 加速绘图
	go memimg.WatchSprites(cfg.SpritesDir, cfg.Blocksize)
	// 配置文件热更新
	go config.WatchConfig("./config.json")
	// 排行榜，读不到就从空榜开始
	store := leaderboard.NewFileStore(cfg.ScoreFile)
	db := api.InitDB()
	router := gin.Default()
	// 处理玩家改变方向
	router.GET("/input-direction", api.InputDirectionHandler(db, store))
	// 终局画面按键：回车/退格/字符
	router.GET("/input-key", api.InputKeyHandler(db, store))
	// 渲染函数 返回静态地址
	router.GET("/render-map", api.RenderMapHandler(db, store))
	// 渲染端取状态快照
	router.GET("/state", api.StateHandler(db, store))
	// 排行榜
	router.GET("/leaderboard", api.LeaderboardHandler(store))
	// 删除会话
	router.GET("/delete-map", api.DeleteMapHandler(db))
	router.Static("/static", "./static") // 静态文件服务
	// 从配置单例读取端口 监听
	router.Run(":" + config.GetConfigValue("port").(string))
}

// EnsureFoldersExist 检查并创建必需的文件夹
func EnsureFoldersExist() {
	folders := []string{"sprites", "static"}

	for _, folder := range folders {
		if _, err := os.Stat(folder); os.IsNotExist(err) {
			// 文件夹不存在，尝试创建它
			err := os.Mkdir(folder, 0755) // 使用0755权限以确保读写权限
			if err != nil {
				// 如果创建失败，则记录错误并可能退出程序
				log.Fatalf("Failed to create %s directory: %s", folder, err)
			}
			log.Printf("Created %s directory", folder)
		} else {
			// 文件夹已存在
			log.Printf("%s directory already exists", folder)
		}
	}
}
