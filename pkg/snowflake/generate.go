package snowflake

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	mu   sync.Mutex

	errInvalidMachineID = errors.New("invalid snowflake machine id")
)

// Init 使用配置的机器号与数据中心号创建节点，datacenterID 和 machineID 都是 0~31
func Init(machineID, dataCenterID int64) error {
	if machineID < 0 || machineID > 31 || dataCenterID < 0 || dataCenterID > 31 {
		return errInvalidMachineID
	}

	n, err := snowflake.NewNode((dataCenterID << 5) | machineID)
	if err != nil {
		return err
	}

	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

func current() *snowflake.Node {
	mu.Lock()
	defer mu.Unlock()
	if node == nil {
		// 未初始化时使用 0 号节点
		node, _ = snowflake.NewNode(0)
	}
	return node
}

func NextID() int64 {
	return current().Generate().Int64()
}

// NextString 供 JSON 中以字符串存储的 ID 使用
func NextString() string {
	return current().Generate().String()
}
