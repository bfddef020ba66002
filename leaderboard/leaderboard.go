// 排行榜的读写，落盘格式是每行一条"名字,分数"
package leaderboard

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
)

// MaxEntries 榜上只留前几名
const MaxEntries = 5

// Entry 榜上的一条记录
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Store 排行榜的抽象，注入到会话里，测试时换成内存实现
type Store interface {
	// IsQualifying 判断这个分数能不能上榜
	IsQualifying(score int) bool
	// Record 插入一条记录并持久化，按分数降序截断到MaxEntries
	Record(name string, score int) error
	// TopN 按分数降序返回榜上全部记录
	TopN() []Entry
}

// FileStore 基于文本文件的排行榜。文件不存在或读不了就从空榜开始，
// 写失败只记日志不影响游戏继续。
type FileStore struct {
	path    string
	entries []Entry
}

// NewFileStore 创建并从文件加载排行榜
func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path}
	s.load()
	return s
}

// load 逐行解析文件，格式不对的行静默跳过
func (s *FileStore) load() {
	file, err := os.Open(s.path)
	if err != nil {
		// 读不到就当空榜，属于正常情况（比如第一次运行）
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), ",", 2)
		if len(parts) != 2 {
			continue
		}
		score, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		s.entries = append(s.entries, Entry{Name: parts[0], Score: score})
	}

	s.sortAndTruncate()
}

func (s *FileStore) sortAndTruncate() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Score > s.entries[j].Score
	})
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}
}

// save 整个文件重写一遍，写失败记日志但不中断游戏
func (s *FileStore) save() error {
	file, err := os.Create(s.path)
	if err != nil {
		log.Printf("Error creating high score file: %v", err)
		return err
	}
	defer file.Close()

	for _, entry := range s.entries {
		if _, err := fmt.Fprintf(file, "%s,%d\n", entry.Name, entry.Score); err != nil {
			log.Printf("Error writing high scores: %v", err)
			return err
		}
	}
	return nil
}

// IsQualifying 榜没满就能上，满了要比最后一名分数高
func (s *FileStore) IsQualifying(score int) bool {
	if len(s.entries) < MaxEntries {
		return true
	}
	return score > s.entries[len(s.entries)-1].Score
}

// Record 插入、排序、截断、落盘
func (s *FileStore) Record(name string, score int) error {
	s.entries = append(s.entries, Entry{Name: name, Score: score})
	s.sortAndTruncate()
	return s.save()
}

// TopN 返回榜单的副本，调用方改不到内部状态
func (s *FileStore) TopN() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// MemoryStore 内存实现，测试用
type MemoryStore struct {
	entries []Entry
}

// NewMemoryStore 创建空的内存排行榜
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// IsQualifying 规则与FileStore一致
func (s *MemoryStore) IsQualifying(score int) bool {
	if len(s.entries) < MaxEntries {
		return true
	}
	return score > s.entries[len(s.entries)-1].Score
}

// Record 只在内存里插入排序截断
func (s *MemoryStore) Record(name string, score int) error {
	s.entries = append(s.entries, Entry{Name: name, Score: score})
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Score > s.entries[j].Score
	})
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}
	return nil
}

// TopN 返回榜单副本
func (s *MemoryStore) TopN() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
