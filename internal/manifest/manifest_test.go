package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Files(t *testing.T) {
	s := NewSet()

	s.AddScript("start_ping.py")
	s.AddImage("Fedora-x86_64-20-20131211.1-sda-ping.qcow2")
	s.AddScript("scripts/start_ping.py")
	s.AddScript("cloud_init.cfg")
	s.AddImage("")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []File{
		{Type: Image, Name: "images/Fedora-x86_64-20-20131211.1-sda-ping.qcow2"},
		{Type: Script, Name: "scripts/cloud_init.cfg"},
		{Type: Script, Name: "scripts/start_ping.py"},
	}, s.Files())
}
