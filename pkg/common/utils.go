package common

import "fmt"

// ElemToDeleteFormattedInfos returns the count and start sentences logged
// before a removal batch.
func ElemToDeleteFormattedInfos(elemName string, arraySize int, group string) (string, string) {
	groupString := fmt.Sprintf(" from group %s", group)
	if group == "" {
		groupString = ""
	}

	count := fmt.Sprintf("There is no %s to remove%s.", elemName, groupString)
	if arraySize == 1 {
		count = fmt.Sprintf("There is 1 %s to remove%s.", elemName, groupString)
	}
	if arraySize > 1 {
		count = fmt.Sprintf("There are %d %ss to remove%s.", arraySize, elemName, groupString)
	}

	start := fmt.Sprintf("Starting %s removal%s.", elemName, groupString)

	return count, start
}

// Plural picks the singular or plural form of a noun for n.
func Plural(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}
