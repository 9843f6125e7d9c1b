// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package classifier

import (
	"context"

	"github.com/black-desk/smbwatch/pkg/interfaces"
	"github.com/black-desk/smbwatch/pkg/types"
)

var actionClasses = map[types.Action]types.ActionClass{
	types.ActionAdded:           types.ActionClassCreated,
	types.ActionRemoved:         types.ActionClassDeleted,
	types.ActionModified:        types.ActionClassUpdated,
	types.ActionRemovedByDelete: types.ActionClassDeleted,
}

// ClassOf maps a protocol action code to its action class.
// Codes outside the table give types.ActionClassNone.
func ClassOf(action types.Action) types.ActionClass {
	return actionClasses[action]
}

// Classify computes the event kinds record could stand for.
// ok is false when the action code is not one the classifier knows,
// in which case the record must be dropped.
//
// Deleted entries are never looked up, as they are gone by now.
// Other records are looked up in path through the resolver;
// when the type stays unknown both the file and the folder kind
// are candidates.
func (c *Classifier) Classify(
	ctx context.Context, record *types.RawChangeRecord,
	tree interfaces.Tree, path string,
) (
	ret types.ClassifiedEvent, ok bool,
) {
	class := ClassOf(record.Action)
	if class == types.ActionClassNone {
		c.log.Debugw("Drop record with unrecognized action.",
			"action", record.Action,
			"filename", record.Filename,
			"path", path,
		)
		return
	}

	ret = types.ClassifiedEvent{
		Class:    class,
		Action:   record.Action,
		Filename: record.Filename,
		Path:     path,
		Type:     types.EntryTypeUnknown,
	}
	ok = true

	if class != types.ActionClassDeleted {
		ret.Type = c.resolver.Resolve(ctx, tree, path, record.Filename)
	}

	ret.Candidates = Candidates(class, ret.Type)

	c.log.Debugw("Record classified.",
		"action", record.Action,
		"filename", record.Filename,
		"path", path,
		"type", ret.Type,
		"candidates", ret.Candidates,
	)
	return
}

// Candidates is the candidate set of an action class
// given what is known about the entry type.
func Candidates(class types.ActionClass, entry types.EntryType) types.EventKindSet {
	if class == types.ActionClassNone {
		return 0
	}

	if class == types.ActionClassDeleted {
		entry = types.EntryTypeUnknown
	}

	switch entry {
	case types.EntryTypeFile:
		return withWatchFolder(class, types.NewEventKindSet(class.FileKind()))
	case types.EntryTypeDirectory:
		return withWatchFolder(class, types.NewEventKindSet(class.FolderKind()))
	default:
		return types.NewEventKindSet(class.FileKind(), class.FolderKind())
	}
}

func withWatchFolder(class types.ActionClass, set types.EventKindSet) types.EventKindSet {
	if class != types.ActionClassUpdated {
		return set
	}
	return set.Add(types.EventKindWatchFolderUpdated)
}

// Match reports whether an event should be delivered
// to a watch asking for target.
// watchFolderUpdated matches every update, whatever the entry type.
func Match(event *types.ClassifiedEvent, target types.EventKind) bool {
	if event.Candidates.Has(target) {
		return true
	}

	return target == types.EventKindWatchFolderUpdated &&
		event.Class == types.ActionClassUpdated
}
