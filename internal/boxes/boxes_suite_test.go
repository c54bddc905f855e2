package boxes_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestBoxes(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Boxes Suite")
}
