package controllers_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/weftdev/weft/pkg/chat"
	"github.com/weftdev/weft/pkg/controllers"
	"github.com/weftdev/weft/pkg/reveal"
	"github.com/weftdev/weft/pkg/site"
)

func TestControllers(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Controllers Suite")
}

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

// recorder collects generator observer callbacks for later assertions.
type recorder struct {
	mu      sync.Mutex
	states  []controllers.State
	notices []controllers.Notification
}

func (r *recorder) attach(g *controllers.Generator) {
	g.SetObservers(
		func(s controllers.State) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.states = append(r.states, s)
		},
		func(n controllers.Notification) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.notices = append(r.notices, n)
		},
	)
}

func (r *recorder) phases() []controllers.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []controllers.Phase
	for _, s := range r.states {
		if len(out) == 0 || out[len(out)-1] != s.Phase {
			out = append(out, s.Phase)
		}
	}
	return out
}

func (r *recorder) allNotices() []controllers.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]controllers.Notification(nil), r.notices...)
}

const siteResponse = "EXPLANATION: Here you go.\n" +
	"HTML: ```html\n<h1>Hi</h1>\n```\n" +
	"CSS: ```css\nh1 { color: teal; }\n```\n" +
	"JS: ```js\nconsole.log(1);\n```"

var _ = Describe("Generator", func() {
	var (
		mockClient *MockClient
		store      *chat.Store
		generator  *controllers.Generator
		rec        *recorder
	)

	BeforeEach(func() {
		mockClient = &MockClient{}
		store = chat.NewStore()
		generator = controllers.NewGenerator(mockClient, store, reveal.Pacing{}, "Sam")
		rec = &recorder{}
		rec.attach(generator)
	})

	AfterEach(func() {
		mockClient.AssertExpectations(GinkgoT())
	})

	Describe("Send", func() {
		It("should run a full cycle and go live", func() {
			mockClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
				Return(siteResponse, nil).Once()

			generator.Send("build a coffee shop site")

			state := generator.State()
			Expect(state.Phase).To(Equal(controllers.PhaseLive))
			Expect(state.Code.HTML).To(Equal("<h1>Hi</h1>\n"))
			Expect(state.Code.CSS).To(Equal("h1 { color: teal; }\n"))
			Expect(state.Code.JS).To(Equal("console.log(1);\n"))
			Expect(state.ViewMode).To(Equal(controllers.ViewModePreview))
			Expect(state.ProjectTitle).To(Equal("a coffee"))

			messages := store.Current().Messages
			Expect(messages).To(HaveLen(2))
			Expect(messages[0].Content).To(Equal("build a coffee shop site"))
			Expect(messages[1].IsAssistant()).To(BeTrue())
			Expect(messages[1].IsStreaming).To(BeFalse())

			code := store.Current().GeneratedCode
			Expect(code).ToNot(BeNil())
			Expect(code.HTML).To(Equal("<h1>Hi</h1>"))
		})

		It("should pass through the expected phases in order", func() {
			mockClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
				Return(siteResponse, nil).Once()

			generator.Send("build a coffee shop site")

			Expect(rec.phases()).To(Equal([]controllers.Phase{
				controllers.PhaseAwaitingCompletion,
				controllers.PhaseParsingResponse,
				controllers.PhaseRevealing,
				controllers.PhaseLive,
			}))
		})

		It("should ignore empty input", func() {
			generator.Send("   ")

			Expect(generator.State().Phase).To(Equal(controllers.PhaseIdle))
			Expect(store.Current().Messages).To(BeEmpty())
		})

		It("should keep the user message and notify on completion failure", func() {
			mockClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
				Return("", errors.New("provider down")).Once()

			generator.Send("build a coffee shop site")

			Expect(generator.State().Phase).To(Equal(controllers.PhaseIdle))

			messages := store.Current().Messages
			Expect(messages).To(HaveLen(1))
			Expect(messages[0].IsUser()).To(BeTrue())

			notices := rec.allNotices()
			Expect(notices).To(HaveLen(1))
			Expect(notices[0].IsError).To(BeTrue())
			Expect(notices[0].Message).To(Equal("Failed to get AI response. Please try again."))
		})

		It("should treat a response without code as conversation", func() {
			mockClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
				Return("Happy to help! What kind of site do you want?", nil).Once()

			generator.Send("hello")

			state := generator.State()
			Expect(state.Phase).To(Equal(controllers.PhaseIdle))
			Expect(state.HasCode()).To(BeFalse())

			messages := store.Current().Messages
			Expect(messages).To(HaveLen(2))
			Expect(messages[1].IsStreaming).To(BeFalse())
			Expect(store.Current().GeneratedCode).To(BeNil())
		})
	})

	Describe("Improve", func() {
		BeforeEach(func() {
			mockClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
				Return(siteResponse, nil).Once()
			generator.Send("build a coffee shop site")
		})

		It("should embed the previous code in the prompt but record only the feedback", func() {
			improved := "EXPLANATION: Done.\nHTML: ```html\n<h1>Blue</h1>\n```"
			mockClient.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(p string) bool {
				return strings.Contains(p, "<h1>Hi</h1>") &&
					strings.Contains(p, "make the header blue") &&
					strings.Contains(p, "build a coffee shop site")
			})).Return(improved, nil).Once()

			generator.Improve("make the header blue")

			messages := store.Current().Messages
			Expect(messages).To(HaveLen(4))
			Expect(messages[2].Content).To(Equal("make the header blue"))
			Expect(messages[2].IsUser()).To(BeTrue())

			state := generator.State()
			Expect(state.Phase).To(Equal(controllers.PhaseLive))
			Expect(state.Code.HTML).To(Equal("<h1>Blue</h1>\n"))
			Expect(state.ImprovePanelOpen).To(BeFalse())
		})

		It("should not record feedback when the provider fails", func() {
			mockClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
				Return("", errors.New("provider down")).Once()

			generator.Improve("make the header blue")

			messages := store.Current().Messages
			Expect(messages).To(HaveLen(2))

			notices := rec.allNotices()
			Expect(notices).To(HaveLen(1))
			Expect(notices[0].Message).To(Equal("Failed to get improved code. Please try again."))
		})

		It("should ignore empty feedback", func() {
			generator.Improve("  ")
			Expect(store.Current().Messages).To(HaveLen(2))
		})
	})

	Describe("session operations", func() {
		It("should reset transient state on a new session", func() {
			mockClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
				Return(siteResponse, nil).Once()
			generator.Send("build a coffee shop site")

			generator.NewSession()

			state := generator.State()
			Expect(state.Phase).To(Equal(controllers.PhaseIdle))
			Expect(state.HasCode()).To(BeFalse())
			Expect(state.ProjectTitle).To(BeEmpty())
			Expect(store.Current().Messages).To(BeEmpty())
		})

		It("should restore a live session on switch", func() {
			mockClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
				Return(siteResponse, nil).Once()
			generator.Send("build a coffee shop site")
			liveID := store.CurrentID()

			generator.NewSession()
			generator.SwitchSession(liveID)

			state := generator.State()
			Expect(state.Phase).To(Equal(controllers.PhaseLive))
			Expect(state.Code.HTML).To(Equal("<h1>Hi</h1>"))
			Expect(state.ImprovePanelOpen).To(BeTrue())
			Expect(state.ViewMode).To(Equal(controllers.ViewModeCode))
		})

		It("should treat deleting the current session like starting fresh", func() {
			mockClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
				Return(siteResponse, nil).Once()
			generator.Send("build a coffee shop site")

			generator.DeleteSession(store.CurrentID())

			state := generator.State()
			Expect(state.Phase).To(Equal(controllers.PhaseIdle))
			Expect(state.HasCode()).To(BeFalse())
			Expect(store.Current().Messages).To(BeEmpty())
		})

		It("should keep transient state when deleting another session", func() {
			mockClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
				Return(siteResponse, nil).Once()
			generator.Send("build a coffee shop site")
			liveID := store.CurrentID()
			generator.NewSession()
			generator.SwitchSession(liveID)

			archived := store.Archived()
			Expect(archived).To(HaveLen(1))
			generator.DeleteSession(archived[0].ID)

			Expect(generator.State().Phase).To(Equal(controllers.PhaseLive))
		})
	})

	Describe("view controls", func() {
		It("should update tab, view mode and improve panel", func() {
			generator.SetActiveTab(site.SectionJS)
			generator.SetViewMode(controllers.ViewModePreview)
			generator.SetImprovePanel(true)

			state := generator.State()
			Expect(state.ActiveTab).To(Equal(site.SectionJS))
			Expect(state.ViewMode).To(Equal(controllers.ViewModePreview))
			Expect(state.ImprovePanelOpen).To(BeTrue())
		})
	})
})
