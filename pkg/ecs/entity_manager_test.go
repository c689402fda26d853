package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testTransform struct {
	X, Y, Z float64
}

type testOrbit struct {
	Period float64
}

type testLabel struct {
	Name string
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// ID 从 1 开始，0 保留
	if id1 != 1 || id2 != 2 {
		t.Errorf("expected IDs 1 and 2, got %d and %d", id1, id2)
	}

	if em.Count() != 2 {
		t.Errorf("expected 2 entities, got %d", em.Count())
	}
}

func TestReflectAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testTransform{X: 1, Y: 2, Z: 3})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testTransform{}))
	if !found {
		t.Fatal("Component should be found")
	}
	if tr := comp.(*testTransform); tr.Z != 3 {
		t.Errorf("Component data mismatch: %+v", tr)
	}

	em.RemoveComponent(id, reflect.TypeOf(&testTransform{}))
	if em.HasComponent(id, reflect.TypeOf(&testTransform{})) {
		t.Error("Component should be removed")
	}
}

func TestGenericAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testOrbit{Period: 365})

	orbit, ok := GetComponent[*testOrbit](em, id)
	if !ok || orbit.Period != 365 {
		t.Fatalf("GetComponent failed: ok=%v orbit=%+v", ok, orbit)
	}

	// 泛型 API 与反射 API 使用同一个键
	if !em.HasComponent(id, reflect.TypeOf(&testOrbit{})) {
		t.Error("reflect API should see generic component")
	}

	if HasComponent[*testLabel](em, id) {
		t.Error("HasComponent should be false for missing component")
	}

	if _, ok := GetComponent[*testLabel](em, id); ok {
		t.Error("GetComponent should fail for missing component")
	}

	if _, ok := GetComponent[*testOrbit](em, EntityID(999)); ok {
		t.Error("GetComponent should fail for unknown entity")
	}

	RemoveComponent[*testOrbit](em, id)
	if HasComponent[*testOrbit](em, id) {
		t.Error("RemoveComponent should remove component")
	}
}

func TestGetEntitiesWith_SortedAndFiltered(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testTransform{})
		if i%2 == 0 {
			AddComponent(em, id, &testOrbit{Period: float64(i + 1)})
			ids = append(ids, id)
		}
		if i%4 == 0 {
			AddComponent(em, id, &testLabel{Name: "x"})
		}
	}

	both := GetEntitiesWith2[*testTransform, *testOrbit](em)
	if len(both) != len(ids) {
		t.Fatalf("expected %d entities, got %d", len(ids), len(both))
	}
	for i := range both {
		if both[i] != ids[i] {
			t.Errorf("result should be sorted: index %d got %d want %d", i, both[i], ids[i])
		}
	}

	three := GetEntitiesWith3[*testTransform, *testOrbit, *testLabel](em)
	if len(three) != 5 {
		t.Errorf("expected 5 entities with all three components, got %d", len(three))
	}

	if len(GetEntitiesWith1[*testTransform](em)) != 20 {
		t.Error("all entities should have transform")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	AddComponent(em, id1, &testTransform{})
	AddComponent(em, id2, &testTransform{})

	em.DestroyEntity(id1)

	// 清理前实体仍存在
	if !em.Exists(id1) {
		t.Error("Entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id1) {
		t.Error("Entity should be removed after cleanup")
	}
	if !em.Exists(id2) {
		t.Error("id2 should still exist")
	}

	// 已删除实体上添加组件是空操作
	AddComponent(em, id1, &testLabel{})
	if HasComponent[*testLabel](em, id1) {
		t.Error("adding to a removed entity should be a no-op")
	}
}
