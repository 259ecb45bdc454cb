package panel_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/carnot/internal/panel"
)

var _ = DescribeTable("Wrap",
	func(text string, width int, want []string) {
		Expect(panel.Wrap(text, width)).To(Equal(want))
	},
	Entry("empty", "", 10, []string(nil)),
	Entry("fits", "WAITING: now", 20, []string{"WAITING: now"}),
	Entry("breaks at words", "one two three four", 9, []string{"one two", "three", "four"}),
	Entry("long word alone", "a extraordinarily b", 5, []string{"a", "extraordinarily", "b"}),
)
