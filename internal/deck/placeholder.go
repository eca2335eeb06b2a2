package deck

import "github.com/phrazzld/wordflip/internal/domain"

// PlaceholderFunc produces the demo deck used when no other source is
// usable. It must be deterministic and return at most three entries.
type PlaceholderFunc func(language string) []domain.WordEntry

var demoWords = map[string][]domain.WordEntry{
	"ko": {
		{Word: "안녕하세요", Meaning: "hello", Example: "안녕하세요, 만나서 반갑습니다.", ExampleCN: "你好，很高兴见到你。"},
		{Word: "감사합니다", Meaning: "thank you", Example: "도와주셔서 감사합니다.", ExampleCN: "谢谢你的帮助。"},
		{Word: "물", Meaning: "water", Example: "물 주세요.", ExampleCN: "请给我水。"},
	},
	"th": {
		{Word: "สวัสดี", Meaning: "hello", Example: "สวัสดีครับ ยินดีที่ได้รู้จัก", ExampleCN: "你好，很高兴认识你。"},
		{Word: "ขอบคุณ", Meaning: "thank you", Example: "ขอบคุณมากครับ", ExampleCN: "非常感谢。"},
		{Word: "น้ำ", Meaning: "water", Example: "ขอน้ำหน่อยครับ", ExampleCN: "请给我一点水。"},
	},
	"ja": {
		{Word: "こんにちは", Meaning: "hello", Example: "こんにちは、はじめまして。", ExampleCN: "你好，初次见面。"},
		{Word: "ありがとう", Meaning: "thank you", Example: "手伝ってくれてありがとう。", ExampleCN: "谢谢你帮忙。"},
		{Word: "水", Meaning: "water", Example: "水をください。", ExampleCN: "请给我水。"},
	},
}

// DemoDeck is the default PlaceholderFunc. Unknown languages get a single
// notice entry.
func DemoDeck(language string) []domain.WordEntry {
	if words, ok := demoWords[language]; ok {
		out := make([]domain.WordEntry, len(words))
		copy(out, words)
		return out
	}
	return []domain.WordEntry{{
		Word:    "no data",
		Meaning: "words_" + language + ".json was not found",
		Example: "Upload a deck or add the file to the data directory",
	}}
}
