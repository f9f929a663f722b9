/*
Package crdt defines the contract that payload types of conflict-free replicated
data types (CRDTs) have to fulfill so that independent replicas converge, and a
container holding one replica's value of such a payload.

Two specification styles are supported:
* Operation-based (CmRDT): an update is split into AtSource, evaluated at the
  source replica without side effects, and Downstream, applied at every replica
  including the source. Only the generated operation is broadcast.
* State-based (CvRDT): an update mutates the value at the source only. The
  whole resulting value (or a delta that is itself a lattice element) is later
  joined into all other replicas via Semilattice.Merge.

CAUTION! Consider these two requirements:
* Operation-based payloads expect the broadcast communication to all other
  replicas to be reliable and causally-ordered. This package does not provide
  such a transport.
* Merge of a state-based payload has to be idempotent, commutative and
  associative. Violations cannot be detected at runtime; use the Check*
  functions of this package in property tests.

The specification style follows Shapiro, Preguiça, Baquero and Zawirski,
available under: https://hal.inria.fr/inria-00555588/document
*/
package crdt
