package finance

import "fmt"

func domainErr(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}
