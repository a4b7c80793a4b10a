package store

import (
	"fmt"

	"github.com/example/typelearn/pkg/models"
)

// seedDefaults fills in anything missing from a fresh or partially loaded
// state: built-in books, the three standard user dicts, settings defaults
// and nil maps. Callers hold s.mu.
func (s *Store) seedDefaults() {
	if len(s.state.WordBooks) == 0 {
		s.state.WordBooks = defaultWordBooks()
	}
	if len(s.state.PoetryBooks) == 0 {
		s.state.PoetryBooks = defaultPoetryBooks()
	}
	if s.state.LearnRecords == nil {
		s.state.LearnRecords = make(map[string]*models.LearnRecord)
	}
	if s.state.DailyStats == nil {
		s.state.DailyStats = make(map[string]*models.DailyStat)
	}

	for _, d := range []struct{ id, name string }{
		{models.DictCollected, "收藏本"},
		{models.DictWrong, "错词本"},
		{models.DictMastered, "已掌握"},
	} {
		if s.findDict(d.id) == nil {
			s.state.UserDicts = append(s.state.UserDicts, models.UserDict{ID: d.id, Name: d.name})
		}
	}

	cfg := &s.state.Settings
	if cfg.PracticeCount == 0 {
		cfg.SoundEnabled = true
		cfg.AutoNext = true
		cfg.ShowHint = true
		cfg.PracticeCount = 20
	}
	if cfg.PerDayNew == 0 {
		cfg.PerDayNew = 40
	}
	if cfg.PerDayReview == 0 {
		cfg.PerDayReview = 40
	}
}

// defaultWordBooks lists the built-in word books. Their content lives in
// bundled spreadsheet files and is loaded on demand; item counts are
// preloaded separately.
func defaultWordBooks() []models.Book {
	return []models.Book{
		{ID: "cet4", Kind: models.KindWord, Name: "CET-4 核心词汇", Description: "大学英语四级核心词汇"},
		{ID: "cet6", Kind: models.KindWord, Name: "CET-6 核心词汇", Description: "大学英语六级核心词汇"},
		{ID: "gk3500", Kind: models.KindWord, Name: "高考 3500 词", Description: "高考英语必备词汇 3500 词"},
		{ID: "ky", Kind: models.KindWord, Name: "考研核心词汇", Description: "考研英语高频词汇"},
	}
}

// defaultPoetryBooks lists the built-in poetry books with their content
// inline, one item per line.
func defaultPoetryBooks() []models.Book {
	tangshi := buildPoetryBook("tangshi", "唐诗三百首精选", "唐代经典诗歌精选", []poem{
		{
			title: "静夜思", author: "李白", dynasty: "唐",
			lines:        []string{"床前明月光，", "疑是地上霜。", "举头望明月，", "低头思故乡。"},
			translations: []string{"明亮的月光洒在床前，", "好像地上泛起了一层霜。", "我抬起头望着那天上的明月，", "不由得低下头来思念起故乡。"},
		},
		{
			title: "春晓", author: "孟浩然", dynasty: "唐",
			lines:        []string{"春眠不觉晓，", "处处闻啼鸟。", "夜来风雨声，", "花落知多少。"},
			translations: []string{"春天睡眠正好，不知不觉天就亮了，", "醒来听到处处都有鸟儿在啼叫。", "想起昨夜曾听到风雨的声音，", "不知道有多少花儿被吹落了呢？"},
		},
		{
			title: "登鹳雀楼", author: "王之涣", dynasty: "唐",
			lines:        []string{"白日依山尽，", "黄河入海流。", "欲穷千里目，", "更上一层楼。"},
			translations: []string{"夕阳依傍着山峰慢慢沉没，", "滔滔黄河朝着大海汹涌奔流。", "想要看到千里之外的风光，", "那就要再登上更高的一层城楼。"},
		},
		{
			title: "相思", author: "王维", dynasty: "唐",
			lines:        []string{"红豆生南国，", "春来发几枝。", "愿君多采撷，", "此物最相思。"},
			translations: []string{"红豆生长在南方的土地上，", "每逢春天就长出新的枝条。", "希望你多多采摘一些吧，", "它最能寄托相思之情。"},
		},
		{
			title: "江雪", author: "柳宗元", dynasty: "唐",
			lines:        []string{"千山鸟飞绝，", "万径人踪灭。", "孤舟蓑笠翁，", "独钓寒江雪。"},
			translations: []string{"所有的山上，飞鸟的身影已经绝迹，", "所有的小路，都不见行人的踪迹。", "江面上有一叶孤舟，一个披着蓑戴着笠的老翁，", "独自在大雪覆盖的寒冷江面上垂钓。"},
		},
	})

	songci := buildPoetryBook("songci", "宋词精选", "宋代经典词作精选", []poem{
		{
			title: "水调歌头·明月几时有", author: "苏轼", dynasty: "宋",
			lines: []string{
				"明月几时有？把酒问青天。",
				"不知天上宫阙，今夕是何年。",
				"我欲乘风归去，又恐琼楼玉宇，高处不胜寒。",
				"起舞弄清影，何似在人间。",
				"转朱阁，低绮户，照无眠。",
				"不应有恨，何事长向别时圆？",
				"人有悲欢离合，月有阴晴圆缺，此事古难全。",
				"但愿人长久，千里共婵娟。",
			},
		},
		{
			title: "如梦令", author: "李清照", dynasty: "宋",
			lines: []string{"昨夜雨疏风骤，", "浓睡不消残酒。", "试问卷帘人，", "却道海棠依旧。", "知否，知否？", "应是绿肥红瘦。"},
		},
	})

	xiaoxue := buildPoetryBook("xiaoxue", "小学必背古诗", "小学阶段必背古诗词", []poem{
		{
			title: "咏鹅", author: "骆宾王", dynasty: "唐",
			lines: []string{"鹅，鹅，鹅，", "曲项向天歌。", "白毛浮绿水，", "红掌拨清波。"},
		},
		{
			title: "悯农", author: "李绅", dynasty: "唐",
			lines: []string{"锄禾日当午，", "汗滴禾下土。", "谁知盘中餐，", "粒粒皆辛苦。"},
		},
	})

	return []models.Book{tangshi, songci, xiaoxue}
}

type poem struct {
	title        string
	author       string
	dynasty      string
	lines        []string
	translations []string
}

// buildPoetryBook flattens poems into line items with one unit per poem.
func buildPoetryBook(id, name, description string, poems []poem) models.Book {
	book := models.Book{
		ID:          id,
		Kind:        models.KindPoetry,
		Name:        name,
		Description: description,
	}
	for pi, p := range poems {
		unit := models.Unit{
			Title:   p.title,
			Author:  p.author,
			Dynasty: p.dynasty,
			Start:   len(book.Items),
			Count:   len(p.lines),
		}
		for li, line := range p.lines {
			item := models.Item{
				ID:   fmt.Sprintf("%s-%d-%d", id, pi+1, li+1),
				Text: line,
				Hint: p.title,
			}
			if li < len(p.translations) {
				item.Meaning = p.translations[li]
			}
			book.Items = append(book.Items, item)
		}
		book.Units = append(book.Units, unit)
	}
	book.ItemCount = len(book.Items)
	return book
}
