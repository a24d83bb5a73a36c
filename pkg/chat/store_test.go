package chat_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/weftdev/weft/pkg/chat"
	"github.com/weftdev/weft/pkg/site"
)

var _ = Describe("Store", func() {
	var store *chat.Store

	BeforeEach(func() {
		store = chat.NewStore()
	})

	Describe("NewStore", func() {
		It("should start with a fresh untitled session and no archive", func() {
			current := store.Current()

			Expect(current.ID).ToNot(BeEmpty())
			Expect(current.Title).To(Equal(chat.DefaultTitle))
			Expect(current.Messages).To(BeEmpty())
			Expect(store.Archived()).To(BeEmpty())
		})
	})

	Describe("AppendUserMessage", func() {
		It("should freeze the title on the first user message", func() {
			store.AppendUserMessage("Build me a portfolio site")

			Expect(store.Current().Title).To(Equal("Build me a portfolio site..."))
		})

		It("should truncate long first messages to a fixed prefix", func() {
			long := strings.Repeat("x", 80)
			store.AppendUserMessage(long)

			title := store.Current().Title
			Expect(title).To(HaveSuffix("..."))
			Expect(title).To(Equal(long[:30] + "..."))
		})

		It("should not retitle on later messages", func() {
			store.AppendUserMessage("first request")
			store.AppendUserMessage("second request")

			Expect(store.Current().Title).To(Equal("first request..."))
		})
	})

	Describe("streaming lifecycle", func() {
		It("should clear the streaming flag on the last assistant message", func() {
			store.AppendUserMessage("hi")
			store.AppendAssistantMessage("working on it")

			Expect(store.Current().Messages[1].IsStreaming).To(BeTrue())

			store.FinishStreaming()
			Expect(store.Current().Messages[1].IsStreaming).To(BeFalse())
		})
	})

	Describe("LastUserMessage", func() {
		It("should return the most recent user message", func() {
			store.AppendUserMessage("first")
			store.AppendAssistantMessage("reply")
			store.AppendUserMessage("second")

			msg, ok := store.LastUserMessage()
			Expect(ok).To(BeTrue())
			Expect(msg.Content).To(Equal("second"))
		})

		It("should report absence on an empty session", func() {
			_, ok := store.LastUserMessage()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("NewSession", func() {
		It("should archive the current session and start fresh", func() {
			store.AppendUserMessage("keep me")
			oldID := store.CurrentID()

			store.NewSession()

			Expect(store.CurrentID()).ToNot(Equal(oldID))
			Expect(store.Current().Messages).To(BeEmpty())

			archived := store.Archived()
			Expect(archived).To(HaveLen(1))
			Expect(archived[0].ID).To(Equal(oldID))
			Expect(archived[0].Messages).To(HaveLen(1))
		})

		It("should never duplicate a session in the archive", func() {
			store.AppendUserMessage("hello")
			oldID := store.CurrentID()

			store.NewSession()
			_, ok := store.Switch(oldID)
			Expect(ok).To(BeTrue())
			store.NewSession()

			count := 0
			for _, s := range store.Archived() {
				if s.ID == oldID {
					count++
				}
			}
			Expect(count).To(Equal(1))
		})
	})

	Describe("Switch", func() {
		It("should restore an archived session with its generated code", func() {
			store.AppendUserMessage("build a bakery site")
			store.SetGeneratedCode(site.Code{HTML: "<h1>Bakery</h1>"}, "a bakery")
			oldID := store.CurrentID()

			store.NewSession()
			sess, ok := store.Switch(oldID)

			Expect(ok).To(BeTrue())
			Expect(sess.ID).To(Equal(oldID))
			Expect(sess.GeneratedCode).ToNot(BeNil())
			Expect(sess.GeneratedCode.HTML).To(Equal("<h1>Bakery</h1>"))
			Expect(sess.ProjectTitle).To(Equal("a bakery"))
			Expect(store.CurrentID()).To(Equal(oldID))
		})

		It("should move the previously current session into the archive", func() {
			store.AppendUserMessage("first")
			firstID := store.CurrentID()
			store.NewSession()
			store.AppendUserMessage("second")
			secondID := store.CurrentID()

			_, ok := store.Switch(firstID)
			Expect(ok).To(BeTrue())

			ids := []string{}
			for _, s := range store.Archived() {
				ids = append(ids, s.ID)
			}
			Expect(ids).To(ContainElement(secondID))
			Expect(ids).ToNot(ContainElement(firstID))
		})

		It("should refuse unknown ids", func() {
			_, ok := store.Switch("no-such-session")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Delete", func() {
		It("should remove an archived session", func() {
			store.AppendUserMessage("doomed")
			doomedID := store.CurrentID()
			store.NewSession()

			store.Delete(doomedID)

			Expect(store.Archived()).To(BeEmpty())
		})

		It("should replace the current session when it is deleted", func() {
			store.AppendUserMessage("doomed")
			doomedID := store.CurrentID()

			store.Delete(doomedID)

			Expect(store.CurrentID()).ToNot(Equal(doomedID))
			Expect(store.Current().Messages).To(BeEmpty())
		})
	})

	Describe("isolation", func() {
		It("should hand out copies that later mutations do not affect", func() {
			store.AppendUserMessage("original")
			snapshot := store.Current()

			store.AppendUserMessage("added later")

			Expect(snapshot.Messages).To(HaveLen(1))
		})
	})
})
