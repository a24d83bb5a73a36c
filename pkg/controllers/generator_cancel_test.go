package controllers_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/weftdev/weft/pkg/chat"
	"github.com/weftdev/weft/pkg/controllers"
	"github.com/weftdev/weft/pkg/reveal"
)

// blockingClient parks every Complete call until released, so tests can
// observe the generator mid-flight.
type blockingClient struct {
	started  chan struct{}
	release  chan struct{}
	response string
	calls    int32
}

func newBlockingClient(response string) *blockingClient {
	return &blockingClient{
		started:  make(chan struct{}, 8),
		release:  make(chan struct{}),
		response: response,
	}
}

func (c *blockingClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	atomic.AddInt32(&c.calls, 1)
	c.started <- struct{}{}

	select {
	case <-c.release:
		return c.response, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *blockingClient) callCount() int {
	return int(atomic.LoadInt32(&c.calls))
}

var _ = Describe("Generator in flight", func() {
	var (
		client    *blockingClient
		store     *chat.Store
		generator *controllers.Generator
		rec       *recorder
	)

	BeforeEach(func() {
		client = newBlockingClient(siteResponse)
		store = chat.NewStore()
		generator = controllers.NewGenerator(client, store, reveal.Pacing{}, "Sam")
		rec = &recorder{}
		rec.attach(generator)
	})

	It("should drop sends while a cycle is in flight", func() {
		done := make(chan struct{})
		go func() {
			defer GinkgoRecover()
			generator.Send("build a coffee shop site")
			close(done)
		}()
		Eventually(client.started).Should(Receive())

		generator.Send("this one is ignored")
		generator.Improve("so is this")
		Expect(client.callCount()).To(Equal(1))
		Expect(store.Current().Messages).To(HaveLen(1))

		close(client.release)
		Eventually(done).Should(BeClosed())
		Expect(generator.State().Phase).To(Equal(controllers.PhaseLive))
	})

	It("should discard a cycle cancelled by starting a new session", func() {
		done := make(chan struct{})
		go func() {
			defer GinkgoRecover()
			generator.Send("build a coffee shop site")
			close(done)
		}()
		Eventually(client.started).Should(Receive())

		generator.NewSession()
		close(client.release)
		Eventually(done).Should(BeClosed())

		state := generator.State()
		Expect(state.Phase).To(Equal(controllers.PhaseIdle))
		Expect(state.HasCode()).To(BeFalse())
		Expect(store.Current().Messages).To(BeEmpty())

		// The abandoned session keeps only the user message; the late
		// response never lands anywhere.
		archived := store.Archived()
		Expect(archived).To(HaveLen(1))
		Expect(archived[0].Messages).To(HaveLen(1))
		Expect(archived[0].GeneratedCode).To(BeNil())

		// A cancelled cycle must not surface an error notification.
		Expect(rec.allNotices()).To(BeEmpty())
	})

	It("should discard a cycle cancelled by switching sessions", func() {
		firstID := store.CurrentID()
		generator.NewSession()

		done := make(chan struct{})
		go func() {
			defer GinkgoRecover()
			generator.Send("build a coffee shop site")
			close(done)
		}()
		Eventually(client.started).Should(Receive())

		generator.SwitchSession(firstID)
		close(client.release)
		Eventually(done).Should(BeClosed())

		Expect(store.CurrentID()).To(Equal(firstID))
		Expect(store.Current().Messages).To(BeEmpty())
		Expect(generator.State().Phase).To(Equal(controllers.PhaseIdle))
	})
})

// stubClient answers immediately and records the context of every call.
type stubClient struct {
	mu       sync.Mutex
	ctxs     []context.Context
	response string
	err      error
}

func (c *stubClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	c.mu.Lock()
	c.ctxs = append(c.ctxs, ctx)
	c.mu.Unlock()
	return c.response, c.err
}

func (c *stubClient) lastCtx() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctxs[len(c.ctxs)-1]
}

var _ = Describe("Generator cycle teardown", func() {
	var (
		client    *stubClient
		store     *chat.Store
		generator *controllers.Generator
	)

	BeforeEach(func() {
		client = &stubClient{response: siteResponse}
		store = chat.NewStore()
		generator = controllers.NewGenerator(client, store, reveal.Pacing{}, "Sam")
	})

	It("should release the completion context when a cycle goes live", func() {
		generator.Send("build a coffee shop site")

		Expect(generator.State().Phase).To(Equal(controllers.PhaseLive))
		Expect(client.lastCtx().Err()).To(MatchError(context.Canceled))
	})

	It("should release the completion context on a conversational response", func() {
		client.response = "Happy to help! What kind of site do you want?"

		generator.Send("hello")

		Expect(generator.State().Phase).To(Equal(controllers.PhaseIdle))
		Expect(client.lastCtx().Err()).To(MatchError(context.Canceled))
	})

	It("should release the completion context on failure", func() {
		client.response = ""
		client.err = errors.New("provider down")

		generator.Send("build a coffee shop site")

		Expect(generator.State().Phase).To(Equal(controllers.PhaseIdle))
		Expect(client.lastCtx().Err()).To(MatchError(context.Canceled))
	})

	It("should keep the optimistic message in the session its cycle started from", func() {
		for i := 0; i < 100; i++ {
			client := &stubClient{response: siteResponse}
			store := chat.NewStore()
			generator := controllers.NewGenerator(client, store, reveal.Pacing{}, "Sam")

			done := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				generator.Send("build a coffee shop site")
				close(done)
			}()
			generator.NewSession()
			<-done

			// Either the cycle lost the race and its message was archived
			// with the session it started in, or it started after the new
			// session and ran to completion there. A lone user message in
			// the fresh session would mean the append escaped the gate.
			Expect(store.Current().Messages).To(Or(HaveLen(0), HaveLen(2)))
		}
	})
})
