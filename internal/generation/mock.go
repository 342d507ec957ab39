package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sidra/content-factory/internal/domain"
)

var mockIdeas = []domain.IdeaDraft{
	{Text: "نصائح عملية للطلاب في بداية العام الدراسي", Rationale: "محتوى تعليمي مفيد يساعد الطلاب على الاستعداد للعام الجديد"},
	{Text: "رسالة موجهة لأولياء الأمور حول أهمية المشاركة", Rationale: "بناء جسر تواصل مع العائلة لضمان نجاح الطلاب"},
	{Text: "عرض خاص على المستلزمات الدراسية للعام الجديد", Rationale: "محفز تجاري يشجع على الشراء والمشاركة"},
	{Text: "قصة نجاح طالب متفوق في العام الماضي", Rationale: "إلهام الطلاب وتحفيزهم لتحقيق النجاح"},
	{Text: "دليل للأنشطة اللامنهجية والرياضية", Rationale: "توسيع آفاق الطلاب بما وراء المنهج الدراسي"},
}

var toneLabels = map[domain.Tone]string{
	domain.ToneFriendly:     "ودودة",
	domain.ToneProfessional: "احترافية",
	domain.ToneCreative:     "إبداعية",
	domain.ToneFormal:       "رسمية",
}

var cultureLabels = map[domain.CultureContext]string{
	domain.CultureSudanese: "سودانية",
	domain.CultureBritish:  "بريطانية",
	domain.CultureHybrid:   "هجين",
}

const copyBody = `📝 **نص مقترح:**

مرحباً جميعاً! 🌟

مع بداية العام الدراسي الجديد، نود مشاركة بعض النصائح القيمة التي ستساعدكم على تحقيق أقصى استفادة من رحلتكم التعليمية. الاستعداد الجيد هو مفتاح النجاح، ونحن هنا لدعمكم في كل خطوة.

نتمنى للجميع عاماً دراسياً مليئاً بالنجاح والإنجازات! 🎓✨

#بداية_العام_الدراسي #نجاح #تعليم`

// Mock returns fixed placeholder content. Image URLs are seeded from the
// clock so consecutive calls differ.
type Mock struct {
	now func() time.Time
}

// NewMock creates a Mock. A nil clock uses time.Now.
func NewMock(clock func() time.Time) *Mock {
	if clock == nil {
		clock = time.Now
	}
	return &Mock{now: clock}
}

// GenerateIdeas returns the five school-year ideas regardless of topic.
func (m *Mock) GenerateIdeas(_ context.Context, _ string) ([]domain.IdeaDraft, error) {
	return append([]domain.IdeaDraft(nil), mockIdeas...), nil
}

func (m *Mock) ComposeCopy(_ context.Context, seed string, tone domain.Tone, culture domain.CultureContext) (string, error) {
	return fmt.Sprintf("بناءً على فكرة \"%s\"، هنا مسودة بنبرة %s وسياق %s:\n\n%s",
		strings.TrimSpace(seed), toneLabels[tone], cultureLabels[culture], copyBody), nil
}

func (m *Mock) GenerateImage(_ context.Context, prompt, _ string) (domain.ImageDescriptor, error) {
	seed := m.now().UnixMilli()
	return domain.ImageDescriptor{
		ID:     fmt.Sprintf("generated-%d", seed),
		URL:    fmt.Sprintf("https://picsum.photos/seed/%d/800/600", seed),
		Prompt: prompt,
		Source: domain.ImageSourceGenerated,
	}, nil
}
