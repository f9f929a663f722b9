/*
Package payloads provides CRDT payload types built on the contract of package
crdt: a max register and a grow-only counter for state-based replication, an
integer counter and an observed-removed set (ORSet) for operation-based
replication.

As with every operation-based payload, the ORSet expects the replication layer
to deliver operations reliably. Causal order is not required from the transport
for correctness: a remove whose adds have not been observed yet is refused by
its downstream precondition and has to be offered again later.
*/
package payloads
