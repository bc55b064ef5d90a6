// Package reservation implements the BB-overloading reservation: the
// rolling computation of the latest HP-core backup start time such that up
// to k longest remaining backups still fit before the window's deadline.
package reservation

import "github.com/khryptorgraphics/ensure-sched/pkg/sched/types"

// Update recomputes w.BackupStart from the window's current backup list:
//
//	backup_start[w] = max(simTime, deadline[w] - sum of bwq over the first
//	                                min(k, |backup_list|) entries)
//
// Update must be called after every mutation of w.BackupList (construction,
// or a primary/backup completion removing an entry) so the reservation
// always exactly covers the k longest remaining backups.
func Update(w *types.Window, k int, simTime float64) {
	l := k
	if l > len(w.BackupList) {
		l = len(w.BackupList)
	}

	var reserveCap float64
	for i := 0; i < l; i++ {
		reserveCap += w.BackupList[i].BackupWorkloadQuota(w.Index)
	}

	newStart := w.End - reserveCap
	if newStart < simTime {
		newStart = simTime
	}
	w.BackupStart = newStart
}
