package resolve

import (
	"errors"
	"fmt"

	"descriptor-translator/internal/entity"
)

var errNotVNFTarget = errors.New("vnf translator does not expose member index and id")

func errUnknownRef(k entity.RefKind) error {
	return fmt.Errorf("unknown reference kind %d", int(k))
}
