package fakes

import (
	boshfstab "github.com/disktools/disk-migrator/platform/fstab"
)

type FakeEditor struct {
	BackupSuffix string
	BackupPath   string
	BackupErr    error

	SetEntries []boshfstab.Entry
	SetErr     error

	ActiveEntriesEntries []boshfstab.Entry
	ActiveEntriesErr     error
}

func (e *FakeEditor) Backup(suffix string) (string, error) {
	e.BackupSuffix = suffix
	return e.BackupPath, e.BackupErr
}

func (e *FakeEditor) Set(entries []boshfstab.Entry) error {
	e.SetEntries = append(e.SetEntries, entries...)
	return e.SetErr
}

func (e *FakeEditor) ActiveEntries() ([]boshfstab.Entry, error) {
	return e.ActiveEntriesEntries, e.ActiveEntriesErr
}
