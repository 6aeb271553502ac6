package constellation_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestConstellation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Constellation Suite")
}
