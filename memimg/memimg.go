// 把渲染用的贴图常驻内存，加速绘图
package memimg

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"
)

var (
	sprites      map[string]image.Image
	spritesMutex sync.RWMutex
)

// LoadSprites 把目录下的贴图全部载入内存并缩放到格子大小。
// 贴图按文件名对应类型：head.png、tail.png、empty_stomach.png、
// full_stomach.png、rusty_scrap.png、shiny_metal.png、water.png。
// 目录不存在或某张图读不了不算致命，渲染端会退回纯色方块。
func LoadSprites(directory string, blockSize int) {
	spritesMutex.Lock()
	sprites = make(map[string]image.Image)
	spritesMutex.Unlock()

	filepath.Walk(directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		loadSprite(path, blockSize)
		return nil
	})
}

// loadSprite 载入并缩放单张贴图，key是不带扩展名的文件名
func loadSprite(path string, blockSize int) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return
	}
	img, err := imaging.Open(path)
	if err != nil {
		return
	}
	scaled := imaging.Resize(img, blockSize, blockSize, imaging.Lanczos)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	spritesMutex.Lock()
	sprites[name] = scaled
	spritesMutex.Unlock()
}

// WatchSprites 监听贴图目录，文件有改动就热更新到内存
func WatchSprites(directory string, blockSize int) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Println("error creating sprite watcher:", err)
		return
	}
	defer watcher.Close()

	done := make(chan bool)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
					loadSprite(event.Name, blockSize)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Println("error:", err)
			}
		}
	}()

	if err = watcher.Add(directory); err != nil {
		fmt.Println("error watching sprite directory:", err)
		return
	}
	<-done
}

// GetSpriteFromMemory 按类型名取贴图，没有时第二个返回值为false
func GetSpriteFromMemory(name string) (image.Image, bool) {
	spritesMutex.RLock()
	img, exists := sprites[name]
	spritesMutex.RUnlock()
	return img, exists
}
