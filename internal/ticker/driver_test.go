package ticker

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Driver", func() {
	var d *Driver

	BeforeEach(func() {
		d = NewDriver(5*time.Millisecond, 16)
	})

	AfterEach(func() {
		d.Close()
	})

	It("should emit ticks tagged with key and sequence", func() {
		seq, err := d.Start("study-timer-1")
		Expect(err).NotTo(HaveOccurred())

		var tick Tick
		Eventually(d.C()).Should(Receive(&tick))
		Expect(tick.Key).To(Equal("study-timer-1"))
		Expect(tick.Seq).To(Equal(seq))
		Expect(tick.At.IsZero()).To(BeFalse())
	})

	It("should replace the handle when a key is restarted", func() {
		first, err := d.Start("a")
		Expect(err).NotTo(HaveOccurred())
		second, err := d.Start("a")
		Expect(err).NotTo(HaveOccurred())

		Expect(second).NotTo(Equal(first))
		Expect(d.Len()).To(Equal(1))
		active, ok := d.Active("a")
		Expect(ok).To(BeTrue())
		Expect(active).To(Equal(second))

		Eventually(func() uint64 {
			tick := <-d.C()
			return tick.Seq
		}).Should(Equal(second))
	})

	It("should stop emitting after Stop", func() {
		_, err := d.Start("a")
		Expect(err).NotTo(HaveOccurred())
		Eventually(d.C()).Should(Receive())

		d.Stop("a")
		_, ok := d.Active("a")
		Expect(ok).To(BeFalse())

		for len(d.C()) > 0 {
			<-d.C()
		}
		Consistently(d.C(), 40*time.Millisecond).ShouldNot(Receive())
	})

	It("should keep keys independent", func() {
		_, err := d.Start("a")
		Expect(err).NotTo(HaveOccurred())
		seqB, err := d.Start("b")
		Expect(err).NotTo(HaveOccurred())

		d.Stop("a")
		Expect(d.Len()).To(Equal(1))

		for len(d.C()) > 0 {
			<-d.C()
		}
		var tick Tick
		Eventually(d.C()).Should(Receive(&tick))
		Expect(tick.Key).To(Equal("b"))
		Expect(tick.Seq).To(Equal(seqB))
	})

	It("should ignore Stop for unknown keys", func() {
		Expect(func() { d.Stop("missing") }).NotTo(Panic())
	})

	It("should close the channel and refuse new handles after Close", func() {
		_, err := d.Start("a")
		Expect(err).NotTo(HaveOccurred())

		d.Close()
		Expect(d.Len()).To(Equal(0))
		Eventually(d.C()).Should(BeClosed())

		_, err = d.Start("a")
		Expect(err).To(MatchError(ErrDriverClosed))
	})

	It("should not block Stop when nobody drains the channel", func() {
		small := NewDriver(time.Millisecond, 1)
		defer small.Close()
		_, err := small.Start("a")
		Expect(err).NotTo(HaveOccurred())
		time.Sleep(10 * time.Millisecond)

		done := make(chan struct{})
		go func() {
			small.Stop("a")
			close(done)
		}()
		Eventually(done).Should(BeClosed())
	})
})
