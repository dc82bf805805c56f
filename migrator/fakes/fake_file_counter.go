package fakes

type FakeFileCounter struct {
	CountRoots []string

	// Counts maps a root path to the count returned for it.
	Counts    map[string]int
	CountErrs map[string]error
}

func NewFakeFileCounter() *FakeFileCounter {
	return &FakeFileCounter{
		Counts:    map[string]int{},
		CountErrs: map[string]error{},
	}
}

func (c *FakeFileCounter) CountRegularFiles(root string) (int, error) {
	c.CountRoots = append(c.CountRoots, root)

	if err, found := c.CountErrs[root]; found {
		return 0, err
	}

	return c.Counts[root], nil
}
