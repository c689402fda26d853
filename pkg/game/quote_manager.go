package game

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/orrery/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	quotesObject   = "quotes"
	quotesProperty = "shown"
)

// QuoteManager 台词选择器
//
// 随机挑选尚未展示过的台词，全部展示过后清空记录重新开始。
// 已展示集合通过 gdata 持久化；gdataManager 为 nil 时只保存在内存中。
type QuoteManager struct {
	gdataManager *gdata.Manager
	references   []config.MovieReference
	shown        map[string]bool
	rng          *rand.Rand
}

// NewQuoteManager 创建台词选择器
//
// 参数：
//   - gdataManager: 可为 nil（降级模式）
//   - refs: 台词数据，为空时使用内置台词
//   - rng: 随机源，为 nil 时使用默认随机源
func NewQuoteManager(gdataManager *gdata.Manager, refs *config.MovieReferencesConfig, rng *rand.Rand) *QuoteManager {
	if refs == nil || len(refs.References) == 0 {
		refs = config.DefaultMovieReferences()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	qm := &QuoteManager{
		gdataManager: gdataManager,
		references:   refs.References,
		shown:        make(map[string]bool),
		rng:          rng,
	}
	if err := qm.load(); err != nil {
		// 记录损坏不是致命错误，从头开始
		log.Printf("[QuoteManager] Warning: %v (resetting shown set)", err)
		qm.shown = make(map[string]bool)
	}
	return qm
}

// load 读取已展示集合，忽略已不存在的 ID
func (qm *QuoteManager) load() error {
	if qm.gdataManager == nil || !qm.gdataManager.ObjectPropExists(quotesObject, quotesProperty) {
		return nil
	}
	data, err := qm.gdataManager.LoadObjectProp(quotesObject, quotesProperty)
	if err != nil {
		return fmt.Errorf("failed to load shown quotes: %w", err)
	}
	var ids []string
	if err := yaml.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("failed to unmarshal shown quotes: %w", err)
	}

	known := make(map[string]bool, len(qm.references))
	for _, ref := range qm.references {
		known[ref.ID] = true
	}
	for _, id := range ids {
		if known[id] {
			qm.shown[id] = true
		}
	}
	return nil
}

// save 持久化已展示集合（按数据文件顺序）
func (qm *QuoteManager) save() error {
	if qm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(qm.Shown())
	if err != nil {
		return fmt.Errorf("failed to marshal shown quotes: %w", err)
	}
	if err := qm.gdataManager.SaveObjectProp(quotesObject, quotesProperty, data); err != nil {
		return fmt.Errorf("failed to save shown quotes: %w", err)
	}
	return nil
}

// Next 选出下一条台词并记录为已展示
func (qm *QuoteManager) Next() config.MovieReference {
	unshown := make([]config.MovieReference, 0, len(qm.references))
	for _, ref := range qm.references {
		if !qm.shown[ref.ID] {
			unshown = append(unshown, ref)
		}
	}
	if len(unshown) == 0 {
		log.Printf("[QuoteManager] All %d quotes shown, starting over", len(qm.references))
		qm.shown = make(map[string]bool)
		unshown = qm.references
	}

	picked := unshown[qm.rng.Intn(len(unshown))]
	qm.shown[picked.ID] = true
	if err := qm.save(); err != nil {
		log.Printf("[QuoteManager] Warning: %v", err)
	}
	return picked
}

// Shown 已展示的台词 ID（按数据文件顺序）
func (qm *QuoteManager) Shown() []string {
	ids := make([]string, 0, len(qm.shown))
	for _, ref := range qm.references {
		if qm.shown[ref.ID] {
			ids = append(ids, ref.ID)
		}
	}
	return ids
}

// Remaining 尚未展示的台词数量
func (qm *QuoteManager) Remaining() int {
	return len(qm.references) - len(qm.Shown())
}

// Reset 清空已展示集合
func (qm *QuoteManager) Reset() error {
	qm.shown = make(map[string]bool)
	return qm.save()
}
