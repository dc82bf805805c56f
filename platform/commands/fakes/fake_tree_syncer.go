package fakes

type FakeTreeSyncer struct {
	SyncTreeSrcDirs  []string
	SyncTreeDstDirs  []string
	SyncTreeExcludes [][]string
	SyncTreeErr      error
}

func (s *FakeTreeSyncer) SyncTree(srcDir, dstDir string, excludes []string) error {
	s.SyncTreeSrcDirs = append(s.SyncTreeSrcDirs, srcDir)
	s.SyncTreeDstDirs = append(s.SyncTreeDstDirs, dstDir)
	s.SyncTreeExcludes = append(s.SyncTreeExcludes, excludes)
	return s.SyncTreeErr
}
